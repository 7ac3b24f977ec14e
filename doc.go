// Package huffpack implements a byte-oriented Huffman entropy coder.
//
// An input is compressed into a self-describing container holding the
// frequency of every byte value, the number of payload bits, and the
// Huffman code of every input byte.  The decoder rebuilds the same tree
// from the frequency table and walks it one payload bit at a time.
//
// The package also provides the bit-level building blocks the coder is made
// of: BitArray, BitReader and BitWriter.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
