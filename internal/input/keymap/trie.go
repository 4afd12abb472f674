package keymap

import "github.com/dshills/spiral/internal/input/key"

// trieNode is a node in a mode's binding trie.
type trieNode struct {
	children map[key.Event]*trieNode
	binding  *Binding
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[key.Event]*trieNode)}
}

// PrefixTree stores bindings for one mode, keyed by key sequence.
type PrefixTree struct {
	root  *trieNode
	count int
}

// NewPrefixTree creates an empty tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newTrieNode()}
}

// Insert stores b under its key sequence, replacing any binding already
// there.
func (t *PrefixTree) Insert(b *Binding) {
	node := t.root
	for _, ev := range b.Keys {
		child, ok := node.children[ev]
		if !ok {
			child = newTrieNode()
			node.children[ev] = child
		}
		node = child
	}
	if node.binding == nil {
		t.count++
	}
	node.binding = b
}

// Remove deletes the binding at seq and prunes empty nodes.
// Returns false if no binding was stored there.
func (t *PrefixTree) Remove(seq key.Sequence) bool {
	path := make([]*trieNode, 0, len(seq)+1)
	node := t.root
	path = append(path, node)
	for _, ev := range seq {
		child, ok := node.children[ev]
		if !ok {
			return false
		}
		node = child
		path = append(path, node)
	}
	if node.binding == nil {
		return false
	}
	node.binding = nil
	t.count--

	for i := len(seq) - 1; i >= 0; i-- {
		n := path[i+1]
		if n.binding != nil || len(n.children) > 0 {
			break
		}
		delete(path[i].children, seq[i])
	}
	return true
}

func (t *PrefixTree) find(seq key.Sequence) *trieNode {
	node := t.root
	for _, ev := range seq {
		child, ok := node.children[ev]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Lookup returns the binding stored exactly at seq.
func (t *PrefixTree) Lookup(seq key.Sequence) *Binding {
	if node := t.find(seq); node != nil {
		return node.binding
	}
	return nil
}

// HasPrefix reports whether some binding has seq as a strict prefix.
func (t *PrefixTree) HasPrefix(seq key.Sequence) bool {
	node := t.find(seq)
	return node != nil && len(node.children) > 0
}

// Len returns the number of bindings stored.
func (t *PrefixTree) Len() int {
	return t.count
}

// Walk calls fn for every binding in the tree, stopping if fn returns
// false.
func (t *PrefixTree) Walk(fn func(*Binding) bool) {
	var walk func(*trieNode) bool
	walk = func(n *trieNode) bool {
		if n.binding != nil && !fn(n.binding) {
			return false
		}
		for _, child := range n.children {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(t.root)
}
