/*
Package trie implements the counted prefix tree behind command name completion.

Every stored word is a path of single-byte nodes from the root. A node's count
records how many times the word ending at that node was inserted and not yet
removed, so duplicate inserts and symmetric removes are supported.

Children of each node are kept sorted by byte, which gives binary search
lookups and makes a pre-order walk produce words in ascending order. Byte
order is code point order for valid UTF-8, and words that are not valid
UTF-8 are stored and returned unchanged:

	t := trie.New()
	t.Insert("start")
	t.Insert("status")
	t.Insert("stop")

	m := t.Search("sta")
	for w, ok := m.Next(); ok; w, ok = m.Next() {
		fmt.Println(w) // start, status
	}

Nodes are never removed. A word whose count drops back to zero keeps its path,
so the number of allocated nodes only grows over the life of a Trie.

The empty string is a word like any other: it ends at the root, and
Search("") walks the whole tree.

A Trie does no locking. Callers sharing one across goroutines must hold an
exclusive lock around Insert and Remove, and around the full consumption of a
Search sequence when writes can happen concurrently.
*/
package trie

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned by Remove when the word has no live insertion.
var ErrNotFound = errors.New("trie: word not found")

// rootLabel marks the root node, which stands for no character.
const rootLabel byte = 0

type node struct {
	label    byte
	count    int
	children []*node
}

// child returns the position of label among n's children and whether a child
// with that label exists there.
func (n *node) child(label byte) (int, bool) {
	return slices.BinarySearchFunc(n.children, label, func(c *node, b byte) int {
		return cmp.Compare(c.label, b)
	})
}

// Trie is an ordered, counted prefix tree. The zero value is not usable,
// create one with New.
type Trie struct {
	root  *node
	nodes int
	words int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{
		root:  &node{label: rootLabel},
		nodes: 1,
	}
}

// Insert adds one occurrence of word, creating missing nodes along its path.
func (t *Trie) Insert(word string) {
	n := t.root
	for j := 0; j < len(word); j++ {
		i, ok := n.child(word[j])
		if !ok {
			n.children = slices.Insert(n.children, i, &node{label: word[j]})
			t.nodes++
		}
		n = n.children[i]
	}
	n.count++
	t.words++
}

// Remove drops one occurrence of word. It returns an error wrapping
// ErrNotFound when the path does not exist or its count is already zero;
// the trie is left untouched in that case. Emptied nodes are kept.
func (t *Trie) Remove(word string) error {
	n := t.find(word)
	if n == nil || n.count <= 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	n.count--
	t.words--
	return nil
}

// Search returns the stored words starting with prefix, in ascending order,
// each repeated by its multiplicity. The sequence is computed lazily from the
// current state of the trie and can be consumed once.
func (t *Trie) Search(prefix string) *Matches {
	n := t.find(prefix)
	if n == nil {
		return &Matches{}
	}
	return &Matches{stack: []frame{{word: prefix, node: n}}}
}

// Words collects Search(prefix) into a slice.
func (t *Trie) Words(prefix string) []string {
	return t.Search(prefix).Collect()
}

// Count reports the current multiplicity of word.
func (t *Trie) Count(word string) int {
	if n := t.find(word); n != nil {
		return n.count
	}
	return 0
}

// Stats returns the number of allocated nodes, root included, and the sum
// of live multiplicities.
func (t *Trie) Stats() map[string]int {
	return map[string]int{
		"nodes": t.nodes,
		"words": t.words,
	}
}

// find walks word from the root without allocating.
func (t *Trie) find(word string) *node {
	n := t.root
	for j := 0; j < len(word); j++ {
		i, ok := n.child(word[j])
		if !ok {
			return nil
		}
		n = n.children[i]
	}
	return n
}
