package huffpack

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

const wordWidth = 64

// BitArray is a fixed-length sequence of bits packed into 64-bit words.
// Bit i lives in word i/64, counting from the most significant bit of the
// word.
type BitArray struct {
	length int
	words  []uint64
}

// NewBitArray returns a zeroed BitArray holding size bits.
func NewBitArray(size int) *BitArray {
	assert.Assertf(size >= 0, "size %d < 0", size)
	return &BitArray{
		length: size,
		words:  make([]uint64, ceilDiv(size, wordWidth)),
	}
}

// BitArrayFromByte returns an 8-bit BitArray holding b, most significant
// bit first.
func BitArrayFromByte(b byte) *BitArray {
	ba := NewBitArray(8)
	ba.words[0] = uint64(b) << (wordWidth - 8)
	return ba
}

// BitArrayFromWord returns a 64-bit BitArray holding w.
func BitArrayFromWord(w uint64) *BitArray {
	ba := NewBitArray(wordWidth)
	ba.words[0] = w
	return ba
}

// BitArrayFromBytes returns a BitArray holding p in big-endian order.  The
// length is rounded up to a whole number of words; the padding is zero.
func BitArrayFromBytes(p []byte) *BitArray {
	numWords := ceilDiv(len(p), 8)
	ba := NewBitArray(numWords * wordWidth)
	var tmp [8]byte
	for i := 0; i < numWords; i++ {
		tmp = [8]byte{}
		copy(tmp[:], p[i*8:])
		ba.words[i] = binary.BigEndian.Uint64(tmp[:])
	}
	return ba
}

// Len returns the number of bits in the array.
func (ba *BitArray) Len() int {
	return ba.length
}

// Words returns the number of storage words backing the array.
func (ba *BitArray) Words() int {
	return len(ba.words)
}

// Get returns the bit at pos.
func (ba *BitArray) Get(pos int) (bool, error) {
	if err := ba.check(pos); err != nil {
		return false, err
	}
	return ba.words[pos/wordWidth]&bitMask(pos) != 0, nil
}

// Set sets the bit at pos to 1.
func (ba *BitArray) Set(pos int) error {
	if err := ba.check(pos); err != nil {
		return err
	}
	ba.words[pos/wordWidth] |= bitMask(pos)
	return nil
}

// Clear sets the bit at pos to 0.
func (ba *BitArray) Clear(pos int) error {
	if err := ba.check(pos); err != nil {
		return err
	}
	ba.words[pos/wordWidth] &^= bitMask(pos)
	return nil
}

// SetTo sets the bit at pos to value.
func (ba *BitArray) SetTo(pos int, value bool) error {
	if value {
		return ba.Set(pos)
	}
	return ba.Clear(pos)
}

// Bytes serializes the array as big-endian words, 8 bytes per word.
func (ba *BitArray) Bytes() []byte {
	out := make([]byte, 8*len(ba.words))
	ba.PutBytes(out)
	return out
}

// PutBytes serializes the leading bits of the array into dst, in the same
// layout as Bytes, and returns the number of bytes filled.  Only the words
// that overlap dst are read.
func (ba *BitArray) PutBytes(dst []byte) int {
	n := len(dst)
	if limit := 8 * len(ba.words); n > limit {
		n = limit
	}
	full := n / 8
	for i := 0; i < full; i++ {
		binary.BigEndian.PutUint64(dst[8*i:], ba.words[i])
	}
	if rest := n % 8; rest != 0 {
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], ba.words[full])
		copy(dst[8*full:n], tmp[:rest])
	}
	return n
}

// String returns the bits as a string of '0' and '1' characters.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.length)
	for pos := 0; pos < ba.length; pos++ {
		if ba.words[pos/wordWidth]&bitMask(pos) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

var _ fmt.Stringer = (*BitArray)(nil)

func (ba *BitArray) check(pos int) error {
	if pos < 0 || pos >= ba.length {
		return &IndexError{Index: pos, Length: ba.length}
	}
	return nil
}
