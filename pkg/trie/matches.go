package trie

// frame is a pending node on the traversal stack together with the word
// spelled by the path leading to it.
type frame struct {
	word string
	node *node
}

// Matches is a single-pass iterator over the result of a Search.
//
// It walks the subtree in pre-order with an explicit stack. A popped node
// pushes its children in descending order, so they come back off the stack
// in ascending order, and its own word is emitted count times before any of
// them.
type Matches struct {
	stack   []frame
	word    string
	pending int
}

// Next returns the next matching word. The second result is false once the
// sequence is exhausted.
func (m *Matches) Next() (string, bool) {
	for m.pending == 0 {
		if len(m.stack) == 0 {
			return "", false
		}
		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]

		children := top.node.children
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			m.stack = append(m.stack, frame{word: top.word + string([]byte{c.label}), node: c})
		}
		m.word, m.pending = top.word, top.node.count
	}
	m.pending--
	return m.word, true
}

// Collect drains the remaining words into a slice.
func (m *Matches) Collect() []string {
	var words []string
	for w, ok := m.Next(); ok; w, ok = m.Next() {
		words = append(words, w)
	}
	return words
}
