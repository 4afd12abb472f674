package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	n := &Node{
		height:   children[0].height + 1,
		children: children,
	}
	n.recomputeSummary()
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the rune length of text in this subtree.
func (n *Node) Len() int {
	return n.summary.Runes
}

func (n *Node) recomputeSummary() {
	n.summary = TextSummary{}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// appendRange appends the runes in [start, end) to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Runes()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			data := chunk.String()
			from := 0
			if start > offset {
				from = runeToByte(data, start-offset)
			}
			to := len(data)
			if end < chunkEnd {
				to = runeToByte(data, end-offset)
			}
			sb.WriteString(data[from:to])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Runes
		childEnd := offset + childLen
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end-offset, childLen))
		offset = childEnd
	}
}

// split splits the node at rune offset.
// Left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n
	}
	if offset >= n.Len() {
		return n, newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var left, right []Chunk
	current := 0
	for _, chunk := range n.chunks {
		chunkLen := chunk.Runes()
		switch {
		case current+chunkLen <= offset:
			left = append(left, chunk)
		case current >= offset:
			right = append(right, chunk)
		default:
			l, r := chunk.Split(offset - current)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		}
		current += chunkLen
	}
	return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var left, right []*Node
	current := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Runes
		switch {
		case current+childLen <= offset:
			left = append(left, child)
		case current >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - current)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		current += childLen
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren creates a tree from a list of child nodes.
// Children may differ in height; shorter ones are lifted first.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}

	var height uint8
	for _, c := range children {
		height = max(height, c.height)
	}
	level := make([]*Node, len(children))
	for i, c := range children {
		for c.height < height {
			c = newInternalNode([]*Node{c})
		}
		level[i] = c
	}

	for len(level) > MaxChildren {
		var parents []*Node
		for i := 0; i < len(level); i += MaxChildren {
			end := min(i+MaxChildren, len(level))
			parents = append(parents, newInternalNode(level[i:end:end]))
		}
		level = parents
	}
	return newInternalNode(level)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		total := len(left.chunks) + len(right.chunks)
		if total <= MaxChunksPerLeaf {
			chunks := make([]Chunk, 0, total)
			chunks = append(chunks, left.chunks...)
			chunks = append(chunks, right.chunks...)
			return newLeafNodeWithChunks(chunks)
		}
		return newInternalNode([]*Node{left, right})
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}

// collectChunks appends every chunk in the subtree to dst.
func (n *Node) collectChunks(dst []Chunk) []Chunk {
	if n.IsLeaf() {
		return append(dst, n.chunks...)
	}
	for _, child := range n.children {
		dst = child.collectChunks(dst)
	}
	return dst
}

// newlineOffset returns the rune offset of the k-th newline (0-based)
// in the subtree, or -1 if there are not that many.
func (n *Node) newlineOffset(k int) int {
	if k < 0 || k >= n.summary.Lines {
		return -1
	}
	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			lines := chunk.Summary().Lines
			if k < lines {
				return offset + nthNewline(chunk.String(), k)
			}
			k -= lines
			offset += chunk.Runes()
		}
		return -1
	}
	offset := 0
	for i, child := range n.children {
		lines := n.childSummaries[i].Lines
		if k < lines {
			return offset + child.newlineOffset(k)
		}
		k -= lines
		offset += n.childSummaries[i].Runes
	}
	return -1
}

// newlinesBefore counts the newlines in [0, offset).
func (n *Node) newlinesBefore(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= n.Len() {
		return n.summary.Lines
	}
	count := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if offset <= chunk.Runes() {
				return count + countNewlines(chunk.String(), offset)
			}
			count += chunk.Summary().Lines
			offset -= chunk.Runes()
		}
		return count
	}
	for i, child := range n.children {
		runes := n.childSummaries[i].Runes
		if offset <= runes {
			return count + child.newlinesBefore(offset)
		}
		count += n.childSummaries[i].Lines
		offset -= runes
	}
	return count
}
