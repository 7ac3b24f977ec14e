package huffpack

// NumSymbols is the size of the alphabet: one symbol per byte value.
const NumSymbols = 256

// MaxCodeSize is the longest code a tree over NumSymbols leaves can assign.
const MaxCodeSize = NumSymbols - 1

// separator delimits the sections of a container.
const separator = byte('|')

// nodeIndex addresses a node in a Tree's arena.
type nodeIndex int32

// noNode marks a missing child or the root of an empty tree.
const noNode = nodeIndex(-1)
