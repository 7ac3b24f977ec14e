package huffpack

import (
	"fmt"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
)

// Format selects the container layout.
type Format uint8

const (
	// FormatPacked stores 64-bit frequencies, a 64-bit bit count and a
	// packed payload.
	FormatPacked Format = iota

	// FormatLegacyASCII stores every header field and payload bit as an
	// ASCII '0' or '1' character.  Frequencies are limited to 255 and the
	// bit count to 32 bits.
	FormatLegacyASCII
)

// ParseFormat returns the Format named by str ("packed" or "ascii").
func ParseFormat(str string) (Format, error) {
	switch str {
	case "packed":
		return FormatPacked, nil
	case "ascii", "legacy":
		return FormatLegacyASCII, nil
	}
	return 0, errors.Errorf("Unknown container format %q", str)
}

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatPacked:
		return "packed"
	case FormatLegacyASCII:
		return "ascii"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

var _ fmt.Stringer = Format(0)

// Options configures an Encoder or Decoder.  Zero fields take their
// defaults.
type Options struct {
	// Format is the container layout.
	Format Format

	// ReaderBufferSize is the BitReader buffer size in bytes.
	ReaderBufferSize int

	// WriterBufferBits is the BitWriter buffer size in bits; it must be a
	// multiple of 8.
	WriterBufferBits int

	// Logger receives a summary of every encode and decode.  Nil disables
	// logging.
	Logger logger.Logger
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		Format:           FormatPacked,
		ReaderBufferSize: DefaultReaderBufferSize,
		WriterBufferBits: DefaultWriterBufferBits,
	}
}

func (opts Options) withDefaults() Options {
	if opts.ReaderBufferSize <= 0 {
		opts.ReaderBufferSize = DefaultReaderBufferSize
	}
	if opts.WriterBufferBits <= 0 {
		opts.WriterBufferBits = DefaultWriterBufferBits
	}
	return opts
}

func (opts Options) debugWith(message string, vars ...interface{}) {
	if opts.Logger != nil {
		opts.Logger.DebugWith(message, vars...)
	}
}
