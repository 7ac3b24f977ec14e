package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
)

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

// node is either a leaf (symbol, weight) or an internal node (weight, left,
// right).  Children are indices into the owning Tree's arena.
type node struct {
	kind   nodeKind
	symbol byte
	weight uint64
	left   nodeIndex
	right  nodeIndex
}

// Tree is a Huffman code tree stored as an arena of nodes.
type Tree struct {
	nodes []node
	root  nodeIndex
}

// NewTree is a convenience function that constructs and initializes a Tree.
func NewTree(freqs *FrequencyTable) *Tree {
	t := new(Tree)
	t.Init(freqs)
	return t
}

// Init builds the tree for the given frequencies.
//
// Leaves are created in ascending symbol order.  Nodes are popped from a
// min-heap ordered by (weight, arena index); the first node popped becomes
// the left child and the second the right child.  Since leaves and internal
// nodes are appended to the arena in the order they enter the heap, the
// arena index is the insertion sequence number, and the same frequencies
// always produce the same tree.
//
// A table with a single non-zero entry yields a root whose left child is
// that symbol's leaf and whose right child is missing, so the symbol is
// assigned the one-bit code "0".
//
// The sum of all frequencies must fit in 64 bits.
//
func (t *Tree) Init(freqs *FrequencyTable) {
	_, ok := freqs.Total()
	assert.Assertf(ok, "sum of frequencies overflows 64 bits")

	nodes := make([]node, 0, 2*NumSymbols)
	for symbol, freq := range freqs {
		if freq == 0 {
			continue
		}
		nodes = append(nodes, node{
			kind:   leafNode,
			symbol: byte(symbol),
			weight: freq,
			left:   noNode,
			right:  noNode,
		})
	}

	*t = Tree{root: noNode}

	switch len(nodes) {
	case 0:
		t.nodes = nodes
		return
	case 1:
		nodes = append(nodes, node{
			kind:   internalNode,
			weight: nodes[0].weight,
			left:   0,
			right:  noNode,
		})
		t.nodes = nodes
		t.root = 1
		return
	}

	h := weightHeap{list: make([]heapItem, 0, len(nodes))}
	for index := range nodes {
		h.list = append(h.list, heapItem{nodeIndex(index), nodes[index].weight})
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		sum, carry := mathbits.Add64(a.weight, b.weight, 0)
		assert.Assertf(carry == 0, "weight %d + %d overflows", a.weight, b.weight)

		index := nodeIndex(len(nodes))
		nodes = append(nodes, node{
			kind:   internalNode,
			weight: sum,
			left:   a.index,
			right:  b.index,
		})
		heap.Push(&h, heapItem{index, sum})
	}

	t.nodes = nodes
	t.root = heap.Pop(&h).(heapItem).index
}

// Empty reports whether the tree has no symbols at all.
func (t *Tree) Empty() bool {
	return t.root == noNode
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Weight returns the weight of the root, i.e. the sum of all frequencies.
func (t *Tree) Weight() uint64 {
	if t.root == noNode {
		return 0
	}
	return t.nodes[t.root].weight
}

// CodeTable assigns a Code to every leaf by walking the tree in pre-order,
// appending "0" for each left descent and "1" for each right descent.
func (t *Tree) CodeTable() (CodeTable, error) {
	var table CodeTable
	if t.root == noNode {
		return table, ErrEmptyTree
	}

	// stackItem.x tracks progress through an internal node:
	//   x=0 → We just arrived at the node for the first time
	//   x=1 → We have already descended into the left child
	//   x=2 → We have already descended into both children

	type stackItem struct {
		index nodeIndex
		code  Code
		x     byte
	}

	stack := make([]stackItem, 0, 32)
	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		n := &t.nodes[top.index]
		if n.kind == leafNode {
			table[n.symbol] = top.code
			stack = stack[:len(stack)-1]
			continue
		}

		x := top.x
		top.x++
		switch x {
		case 0:
			if n.left != noNode {
				stack = append(stack, stackItem{index: n.left, code: top.code.Append(false)})
			}
		case 1:
			if n.right != noNode {
				stack = append(stack, stackItem{index: n.right, code: top.code.Append(true)})
			}
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return table, nil
}

// Cursor returns a new Cursor positioned at the root.
func (t *Tree) Cursor() *Cursor {
	return &Cursor{tree: t, at: t.root}
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	for index, n := range t.nodes {
		switch n.kind {
		case leafNode:
			fmt.Fprintf(&buf, "\tNode(%d) = Leaf{%d, %d}\n", index, n.symbol, n.weight)
		case internalNode:
			fmt.Fprintf(&buf, "\tNode(%d) = Internal{%d, %d, %d}\n", index, n.weight, n.left, n.right)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type heapItem + type weightHeap {{{

type heapItem struct {
	index  nodeIndex
	weight uint64
}

type weightHeap struct {
	list []heapItem
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.index < b.index
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
