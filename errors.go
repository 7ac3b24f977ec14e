package huffpack

import (
	stderrors "errors"
	"fmt"

	"github.com/nuclio/errors"
)

// ErrEmptyTree is returned when a code table is requested from a tree that
// was built from an all-zero frequency table.
var ErrEmptyTree = errors.New("Huffman tree is empty")

// IndexError reports a bit address outside of a BitArray.
type IndexError struct {
	Index  int
	Length int
}

func (err *IndexError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("bit index out of range: %d < 0", err.Index)
	}
	return fmt.Sprintf("bit index out of range: %d >= length %d", err.Index, err.Length)
}

// EndOfStreamError reports a read past the end of the available input.
type EndOfStreamError struct {
	Op string
}

func (err *EndOfStreamError) Error() string {
	return "end of stream: " + err.Op
}

// EncodingError reports input that cannot be represented by the encoder.
type EncodingError struct {
	Symbol int
	Reason string
}

func (err *EncodingError) Error() string {
	if err.Symbol < 0 {
		return "encoding error: " + err.Reason
	}
	return fmt.Sprintf("encoding error: symbol %d: %s", err.Symbol, err.Reason)
}

// CorruptStreamError reports a container that does not decode.  Offset is
// the bit offset into the payload, or -1 if the header is at fault.
type CorruptStreamError struct {
	Offset int64
	Reason string
}

func (err *CorruptStreamError) Error() string {
	if err.Offset < 0 {
		return "corrupt stream: " + err.Reason
	}
	return fmt.Sprintf("corrupt stream at payload bit %d: %s", err.Offset, err.Reason)
}

// IOFailure wraps an error returned by the underlying source or sink.
type IOFailure struct {
	Op  string
	Err error
}

func (err *IOFailure) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *IOFailure) Unwrap() error {
	return err.Err
}

var (
	_ error = (*IndexError)(nil)
	_ error = (*EndOfStreamError)(nil)
	_ error = (*EncodingError)(nil)
	_ error = (*CorruptStreamError)(nil)
	_ error = (*IOFailure)(nil)
)

// IsIndexError reports whether err was caused by an *IndexError.
func IsIndexError(err error) bool {
	_, found := findCause[*IndexError](err)
	return found
}

// IsEndOfStream reports whether err was caused by an *EndOfStreamError.
func IsEndOfStream(err error) bool {
	_, found := findCause[*EndOfStreamError](err)
	return found
}

// IsEncodingError reports whether err was caused by an *EncodingError.
func IsEncodingError(err error) bool {
	_, found := findCause[*EncodingError](err)
	return found
}

// IsCorruptStream reports whether err was caused by a *CorruptStreamError.
func IsCorruptStream(err error) bool {
	_, found := findCause[*CorruptStreamError](err)
	return found
}

// IsIOFailure reports whether err was caused by an *IOFailure.
func IsIOFailure(err error) bool {
	_, found := findCause[*IOFailure](err)
	return found
}

// findCause walks both nuclio causes and standard Unwrap chains.
func findCause[T error](err error) (T, bool) {
	var zero T
	for err != nil {
		if typed, ok := err.(T); ok {
			return typed, true
		}
		if next := errors.Cause(err); next != nil && next != err {
			err = next
			continue
		}
		err = stderrors.Unwrap(err)
	}
	return zero, false
}

func ioFailure(op string, err error) error {
	if _, found := findCause[*IOFailure](err); found {
		return err
	}
	return &IOFailure{Op: op, Err: err}
}

func corrupt(offset int64, format string, args ...interface{}) error {
	return &CorruptStreamError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
