package suggest

import (
	"sync"

	"github.com/bastiangx/argcmd/internal/utils"
	"github.com/bastiangx/argcmd/pkg/trie"
)

// Suggestion is one completion candidate. Rank is its 1-based position in
// the ascending order produced by the trie.
type Suggestion struct {
	Word string
	Rank uint16
}

// Completer guards a trie with a RWMutex so registration and completion can
// come from different goroutines. Every search is drained while the read
// lock is held, the trie itself holds no snapshot.
type Completer struct {
	mu   sync.RWMutex
	trie *trie.Trie
}

// NewCompleter returns a Completer over an empty trie.
func NewCompleter() *Completer {
	return &Completer{trie: trie.New()}
}

// AddWord records one more occurrence of word.
func (c *Completer) AddWord(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie.Insert(word)
}

// RemoveWord drops one occurrence of word, returning trie.ErrNotFound
// (wrapped) when there is none.
func (c *Completer) RemoveWord(word string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trie.Remove(word)
}

// Reset drops every word. Holders of c see the empty vocabulary.
func (c *Completer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie = trie.New()
}

func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var words []string
	m := c.trie.Search(prefix)
	for w, ok := m.Next(); ok; w, ok = m.Next() {
		if limit > 0 && len(words) >= limit {
			break
		}
		words = append(words, w)
	}

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Word: w, Rank: ranks[i]}
	}
	return suggestions
}

func (c *Completer) CompleteAt(prefix string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	m := c.trie.Search(prefix)
	for i := 0; ; i++ {
		w, ok := m.Next()
		if !ok {
			return "", false
		}
		if i == index {
			return w, true
		}
	}
}

func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Stats()
}

// Words returns every candidate for prefix as plain strings.
func Words(c ICompleter, prefix string) []string {
	suggestions := c.Complete(prefix, 0)
	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.Word
	}
	return words
}
