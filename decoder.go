package huffpack

import (
	"bufio"
	"bytes"
	"io"

	"github.com/nuclio/errors"
)

// Decoder expands containers produced by Encoder.  A Decoder holds only its
// Options and may be used concurrently.
type Decoder struct {
	opts Options
}

// NewDecoder returns a Decoder with the given options.  opts.Format must
// match the format the container was written in.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts.withDefaults()}
}

type walkState uint8

const (
	atRoot walkState = iota
	descending
)

// Decode expands the container read from r into w.
//
// On failure some output may already have been written to w; callers must
// discard it.
//
func (d *Decoder) Decode(w io.Writer, r io.Reader) error {
	br := NewBitReaderSize(r, d.opts.ReaderBufferSize)

	hdr, err := readHeader(br, d.opts.Format)
	if err != nil {
		return errors.Wrap(err, "Failed to read container header")
	}

	total, ok := hdr.freqs.Total()
	if !ok {
		return corrupt(-1, "sum of frequencies overflows 64 bits")
	}

	if hdr.bitCount == 0 {
		if total != 0 {
			return corrupt(-1, "frequency table declares %d symbols but the payload is empty", total)
		}
		d.opts.debugWith("Decoded empty stream", "format", d.opts.Format.String())
		return nil
	}

	tree := NewTree(&hdr.freqs)
	if tree.Empty() {
		return corrupt(-1, "payload of %d bits declared with an empty frequency table", hdr.bitCount)
	}

	out := bufio.NewWriter(w)
	pr := newPayloadReader(br, d.opts.Format)
	cursor := tree.Cursor()
	state := atRoot
	var emitted uint64

	for offset := uint64(0); offset < hdr.bitCount; offset++ {
		bit, err := pr.nextBit()
		if err != nil {
			if IsEndOfStream(err) {
				return corrupt(int64(offset), "payload truncated: declared %d bits", hdr.bitCount)
			}
			if cse, found := findCause[*CorruptStreamError](err); found {
				cse.Offset = int64(offset)
				return cse
			}
			return errors.Wrap(err, "Failed to read payload")
		}

		if err := cursor.Advance(bit); err != nil {
			if cse, found := findCause[*CorruptStreamError](err); found {
				cse.Offset = int64(offset)
				return cse
			}
			return err
		}
		state = descending

		if cursor.IsLeaf() {
			if emitted == total {
				return corrupt(int64(offset), "payload holds more than %d symbols", total)
			}
			if err := out.WriteByte(cursor.Value()); err != nil {
				return ioFailure("write sink", err)
			}
			emitted++
			cursor.Reset()
			state = atRoot
		}
	}

	if state != atRoot {
		return corrupt(int64(hdr.bitCount), "payload ends in the middle of a code")
	}
	if emitted != total {
		return corrupt(int64(hdr.bitCount), "decoded %d symbols, frequency table declares %d", emitted, total)
	}

	if err := out.Flush(); err != nil {
		return ioFailure("write sink", err)
	}

	d.opts.debugWith("Decoded stream",
		"format", d.opts.Format.String(),
		"symbols", hdr.freqs.Distinct(),
		"outputBytes", emitted,
		"payloadBits", hdr.bitCount)
	return nil
}

// DecodeBytes expands the container p.  No output is returned on failure.
func (d *Decoder) DecodeBytes(p []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := d.Decode(&out, bytes.NewReader(p)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decode expands the container read from r into w using DefaultOptions.
func Decode(w io.Writer, r io.Reader) error {
	return NewDecoder(DefaultOptions()).Decode(w, r)
}

// DecodeBytes expands the container p using DefaultOptions.
func DecodeBytes(p []byte) ([]byte, error) {
	return NewDecoder(DefaultOptions()).DecodeBytes(p)
}
