package huffpack

import (
	"io"

	"github.com/chronos-tachyon/assert"
)

// DefaultReaderBufferSize is the buffer size, in bytes, of NewBitReader.
const DefaultReaderBufferSize = 4096

// maxEmptyReads bounds consecutive (0, nil) reads from a misbehaving source.
const maxEmptyReads = 100

// BitReader reads bytes, words and single bits from an io.Reader through an
// internal buffer.  Bits are consumed most significant first.
//
// Byte and word reads are byte aligned: if some bits of the current byte
// have already been consumed by NextBit, the rest of that byte is skipped.
// The legacy reader returned the partially consumed byte again instead.
//
type BitReader struct {
	r      io.Reader
	buf    []byte
	size   int
	pos    int
	bitPos uint
	read   int64
	err    error
}

// NewBitReader returns a BitReader with the default buffer size.
func NewBitReader(r io.Reader) *BitReader {
	return NewBitReaderSize(r, DefaultReaderBufferSize)
}

// NewBitReaderSize returns a BitReader whose buffer holds size bytes.
func NewBitReaderSize(r io.Reader, size int) *BitReader {
	assert.Assertf(size > 0, "buffer size %d <= 0", size)
	return &BitReader{r: r, buf: make([]byte, size)}
}

// HasNext reports whether at least one more bit is available, refilling
// the buffer from the source if necessary.
func (br *BitReader) HasNext() (bool, error) {
	if br.pos < br.size {
		return true, nil
	}
	if br.err != nil {
		return false, br.errOrEOF()
	}
	for tries := 0; ; tries++ {
		if tries >= maxEmptyReads {
			br.err = io.ErrNoProgress
			return false, br.errOrEOF()
		}
		n, err := br.r.Read(br.buf)
		if n > 0 {
			br.size = n
			br.pos = 0
			br.bitPos = 0
			if err != nil {
				br.err = err
			}
			return true, nil
		}
		if err != nil {
			br.size = 0
			br.pos = 0
			br.err = err
			return false, br.errOrEOF()
		}
	}
}

// NextByte returns the next whole byte.
func (br *BitReader) NextByte() (byte, error) {
	if br.bitPos != 0 {
		br.pos++
		br.bitPos = 0
	}
	ok, err := br.HasNext()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &EndOfStreamError{Op: "read byte"}
	}
	b := br.buf[br.pos]
	br.pos++
	br.read += 8
	return b, nil
}

// NextWord returns the next 8 bytes as a big-endian word.
func (br *BitReader) NextWord() (uint64, error) {
	var w uint64
	for i := 0; i < 8; i++ {
		b, err := br.NextByte()
		if err != nil {
			if IsEndOfStream(err) {
				return 0, &EndOfStreamError{Op: "read word"}
			}
			return 0, err
		}
		w = (w << 8) | uint64(b)
	}
	return w, nil
}

// NextBit returns the next bit.
func (br *BitReader) NextBit() (bool, error) {
	ok, err := br.HasNext()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &EndOfStreamError{Op: "read bit"}
	}
	bit := br.buf[br.pos]&(0x80>>br.bitPos) != 0
	br.bitPos++
	if br.bitPos == 8 {
		br.pos++
		br.bitPos = 0
	}
	br.read++
	return bit, nil
}

// BitsRead returns the number of bits consumed so far, not counting bits
// skipped by alignment.
func (br *BitReader) BitsRead() int64 {
	return br.read
}

// Close closes the source if it implements io.Closer.
func (br *BitReader) Close() error {
	if c, ok := br.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return ioFailure("close source", err)
		}
	}
	return nil
}

func (br *BitReader) errOrEOF() error {
	if br.err == io.EOF {
		return nil
	}
	return ioFailure("read source", br.err)
}
