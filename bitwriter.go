package huffpack

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/nuclio/errors"
)

// DefaultWriterBufferBits is the buffer size, in bits, of NewBitWriter.
const DefaultWriterBufferBits = 8 * 4096

// BitWriter appends bits to an io.Writer through a BitArray buffer.  The
// buffer is packed into bytes and written out whenever it fills.
//
// Write errors are sticky: once the sink fails, every later call returns
// the same *IOFailure.
//
type BitWriter struct {
	w       io.Writer
	buf     *BitArray
	scratch []byte
	count   int
	written int64
	err     error
}

// NewBitWriter returns a BitWriter with the default buffer size.
func NewBitWriter(w io.Writer) *BitWriter {
	return NewBitWriterSize(w, DefaultWriterBufferBits)
}

// NewBitWriterSize returns a BitWriter whose buffer holds bits bits.  bits
// must be a positive multiple of 8.
func NewBitWriterSize(w io.Writer, bits int) *BitWriter {
	assert.Assertf(bits > 0 && bits%8 == 0, "buffer size %d is not a positive multiple of 8", bits)
	return &BitWriter{w: w, buf: NewBitArray(bits), scratch: make([]byte, bits/8)}
}

// WriteBit appends one bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	if bw.err != nil {
		return bw.err
	}
	if bw.count >= bw.buf.Len() {
		if err := bw.flush(); err != nil {
			return err
		}
	}
	if err := bw.buf.SetTo(bw.count, bit); err != nil {
		return err
	}
	bw.count++
	bw.written++
	return nil
}

// WriteBits appends a bit string such as "1110".  Characters other than
// '0' and '1' are rejected before anything is written.
func (bw *BitWriter) WriteBits(bitString string) error {
	for i := 0; i < len(bitString); i++ {
		if c := bitString[i]; c != '0' && c != '1' {
			return errors.Errorf("Invalid bit character %q at offset %d", c, i)
		}
	}
	for i := 0; i < len(bitString); i++ {
		if err := bw.WriteBit(bitString[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

// WriteCode appends the bits of hc.
func (bw *BitWriter) WriteCode(hc Code) error {
	for i := 0; i < int(hc.Size); i++ {
		if err := bw.WriteBit(hc.Bit(i)); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte appends the 8 bits of b, most significant first.
func (bw *BitWriter) WriteByte(b byte) error {
	return bw.writeUint(uint64(b), 8)
}

// WriteWord appends the 64 bits of w, most significant first.
func (bw *BitWriter) WriteWord(w uint64) error {
	return bw.writeUint(w, wordWidth)
}

func (bw *BitWriter) writeUint(v uint64, width uint) error {
	for i := width; i > 0; i-- {
		if err := bw.WriteBit(v>>(i-1)&1 != 0); err != nil {
			return err
		}
	}
	return nil
}

// WriteBitArray appends every bit of ba.
func (bw *BitWriter) WriteBitArray(ba *BitArray) error {
	for i := 0; i < ba.Len(); i++ {
		bit, err := ba.Get(i)
		if err != nil {
			return err
		}
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// BitsWritten returns the number of bits appended so far, not counting
// padding added by Flush.
func (bw *BitWriter) BitsWritten() int64 {
	return bw.written
}

// Flush writes out all buffered bits.  A partial final byte is padded with
// zero bits, so bits written after a Flush start on a byte boundary.
func (bw *BitWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	return bw.flush()
}

// Close flushes the writer and closes the sink if it implements io.Closer.
func (bw *BitWriter) Close() error {
	err := bw.Flush()
	if c, ok := bw.w.(io.Closer); ok {
		if closeErr := c.Close(); closeErr != nil && err == nil {
			err = ioFailure("close sink", closeErr)
		}
	}
	return err
}

func (bw *BitWriter) flush() error {
	if bw.count == 0 {
		return nil
	}
	numBytes := ceilDiv(bw.count, 8)
	for pos := bw.count; pos < 8*numBytes; pos++ {
		if err := bw.buf.Clear(pos); err != nil {
			return err
		}
	}
	out := bw.scratch[:numBytes]
	bw.buf.PutBytes(out)
	if _, err := bw.w.Write(out); err != nil {
		bw.err = ioFailure("write sink", err)
		return bw.err
	}
	bw.count = 0
	return nil
}

var _ io.ByteWriter = (*BitWriter)(nil)
