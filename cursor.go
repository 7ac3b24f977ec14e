package huffpack

import (
	"github.com/chronos-tachyon/assert"
)

// Cursor is a position in a Tree, used to decode one bit at a time.
type Cursor struct {
	tree *Tree
	at   nodeIndex
}

// Reset moves the cursor back to the root.
func (c *Cursor) Reset() {
	c.at = c.tree.root
}

// AtRoot reports whether the cursor is at the root.
func (c *Cursor) AtRoot() bool {
	return c.at == c.tree.root
}

// IsLeaf reports whether the cursor is at a leaf.
func (c *Cursor) IsLeaf() bool {
	return c.at != noNode && c.tree.nodes[c.at].kind == leafNode
}

// Value returns the symbol of the leaf under the cursor.  The cursor must
// be at a leaf.
func (c *Cursor) Value() byte {
	assert.Assertf(c.IsLeaf(), "cursor at node %d is not a leaf", c.at)
	return c.tree.nodes[c.at].symbol
}

// Advance moves to the right child if bit is set, else to the left child.
// Moving to a child that does not exist is a *CorruptStreamError.
func (c *Cursor) Advance(bit bool) error {
	if c.at == noNode {
		return corrupt(-1, "no tree to descend into")
	}

	n := &c.tree.nodes[c.at]
	next := noNode
	switch n.kind {
	case leafNode:
		return corrupt(-1, "cannot descend below leaf for symbol %d", n.symbol)
	case internalNode:
		if bit {
			next = n.right
		} else {
			next = n.left
		}
	}

	if next == noNode {
		return corrupt(-1, "bit %d leads to a missing child of node %d", boolToBit(bit), c.at)
	}
	c.at = next
	return nil
}

func boolToBit(bit bool) int {
	if bit {
		return 1
	}
	return 0
}
