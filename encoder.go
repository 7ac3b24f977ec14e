package huffpack

import (
	"bytes"
	"io"

	"github.com/nuclio/errors"
)

// Encoder compresses byte streams into containers.  An Encoder holds only
// its Options and may be used concurrently.
type Encoder struct {
	opts Options
}

// NewEncoder returns an Encoder with the given options.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

// Encode compresses r into w.
//
// The input is read twice: once to count symbol frequencies and, after
// seeking back to the start, once to emit the code of every byte.  w is
// flushed but not closed.
//
func (e *Encoder) Encode(w io.Writer, r io.ReadSeeker) error {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(ioFailure("seek source", err), "Failed to find start of input")
	}

	freqs, err := CountFrequencies(r)
	if err != nil {
		return err
	}

	tree := NewTree(&freqs)

	var table CodeTable
	if !tree.Empty() {
		table, err = tree.CodeTable()
		if err != nil {
			return errors.Wrap(err, "Failed to build code table")
		}
	}

	bitCount, err := table.EncodedSize(&freqs)
	if err != nil {
		return err
	}

	bw := NewBitWriterSize(w, e.opts.WriterBufferBits)
	if err := writeHeader(bw, e.opts.Format, &header{freqs: freqs, bitCount: bitCount}); err != nil {
		return errors.Wrap(err, "Failed to write container header")
	}

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return errors.Wrap(ioFailure("seek source", err), "Failed to rewind input")
	}

	pw := newPayloadWriter(bw, e.opts.Format)
	br := NewBitReaderSize(r, e.opts.ReaderBufferSize)
	var emitted uint64
	for {
		ok, err := br.HasNext()
		if err != nil {
			return errors.Wrap(err, "Failed to re-read input")
		}
		if !ok {
			break
		}

		symbol, err := br.NextByte()
		if err != nil {
			return errors.Wrap(err, "Failed to re-read input")
		}

		hc, found := table.Lookup(symbol)
		if !found {
			return &EncodingError{Symbol: int(symbol), Reason: "no code assigned"}
		}
		if err := pw.writeCode(hc); err != nil {
			return errors.Wrap(err, "Failed to write payload")
		}
		emitted += uint64(hc.Size)
	}

	if emitted != bitCount {
		return &EncodingError{Symbol: -1, Reason: "input changed between frequency count and encoding"}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "Failed to flush container")
	}

	e.opts.debugWith("Encoded stream",
		"format", e.opts.Format.String(),
		"symbols", freqs.Distinct(),
		"inputBytes", tree.Weight(),
		"payloadBits", bitCount)
	return nil
}

// EncodeBytes compresses p and returns the container.
func (e *Encoder) EncodeBytes(p []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := e.Encode(&out, bytes.NewReader(p)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Encode compresses r into w using DefaultOptions.
func Encode(w io.Writer, r io.ReadSeeker) error {
	return NewEncoder(DefaultOptions()).Encode(w, r)
}

// EncodeBytes compresses p using DefaultOptions.
func EncodeBytes(p []byte) ([]byte, error) {
	return NewEncoder(DefaultOptions()).EncodeBytes(p)
}
