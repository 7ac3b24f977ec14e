package huffpack

import (
	"fmt"
	"math"

	"github.com/nuclio/errors"
)

// Container layout, in order:
//
//	frequency table   256 entries
//	separator         '|'
//	bit count         number of payload bits
//	separator         '|'
//	payload           the code of every input byte, in input order
//
// FormatPacked stores each frequency and the bit count as a 64-bit
// big-endian word and packs the payload eight bits to a byte.
// FormatLegacyASCII stores every bit as an ASCII '0' or '1': 8 characters
// per frequency, 32 for the bit count, and one per payload bit.

const (
	legacyFrequencyDigits = 8
	legacyCountDigits     = 32
	legacyMaxFrequency    = 1<<legacyFrequencyDigits - 1
)

type header struct {
	freqs    FrequencyTable
	bitCount uint64
}

func writeHeader(bw *BitWriter, format Format, hdr *header) error {
	switch format {
	case FormatPacked:
		for _, freq := range hdr.freqs {
			if err := bw.WriteWord(freq); err != nil {
				return err
			}
		}
		if err := bw.WriteByte(separator); err != nil {
			return err
		}
		if err := bw.WriteWord(hdr.bitCount); err != nil {
			return err
		}
		return bw.WriteByte(separator)

	case FormatLegacyASCII:
		for symbol, freq := range hdr.freqs {
			if freq > legacyMaxFrequency {
				return &EncodingError{
					Symbol: symbol,
					Reason: fmt.Sprintf("frequency %d exceeds the legacy format limit of %d", freq, legacyMaxFrequency),
				}
			}
		}
		if hdr.bitCount > math.MaxUint32 {
			return &EncodingError{
				Symbol: -1,
				Reason: fmt.Sprintf("payload of %d bits exceeds the legacy format limit", hdr.bitCount),
			}
		}
		for _, freq := range hdr.freqs {
			if err := writeASCIIBits(bw, freq, legacyFrequencyDigits); err != nil {
				return err
			}
		}
		if err := bw.WriteByte(separator); err != nil {
			return err
		}
		if err := writeASCIIBits(bw, hdr.bitCount, legacyCountDigits); err != nil {
			return err
		}
		return bw.WriteByte(separator)
	}
	return errors.Errorf("Unknown container format %v", format)
}

func readHeader(br *BitReader, format Format) (header, error) {
	var hdr header
	switch format {
	case FormatPacked:
		for symbol := range hdr.freqs {
			freq, err := br.NextWord()
			if err != nil {
				return header{}, headerError(err, "frequency table")
			}
			hdr.freqs[symbol] = freq
		}
		if err := readSeparator(br, "frequency table"); err != nil {
			return header{}, err
		}
		bitCount, err := br.NextWord()
		if err != nil {
			return header{}, headerError(err, "bit count")
		}
		hdr.bitCount = bitCount
		if err := readSeparator(br, "bit count"); err != nil {
			return header{}, err
		}
		return hdr, nil

	case FormatLegacyASCII:
		for symbol := range hdr.freqs {
			freq, err := readASCIIBits(br, legacyFrequencyDigits, "frequency table")
			if err != nil {
				return header{}, err
			}
			hdr.freqs[symbol] = freq
		}
		if err := readSeparator(br, "frequency table"); err != nil {
			return header{}, err
		}
		bitCount, err := readASCIIBits(br, legacyCountDigits, "bit count")
		if err != nil {
			return header{}, err
		}
		hdr.bitCount = bitCount
		if err := readSeparator(br, "bit count"); err != nil {
			return header{}, err
		}
		return hdr, nil
	}
	return header{}, errors.Errorf("Unknown container format %v", format)
}

func writeASCIIBits(bw *BitWriter, value uint64, digits int) error {
	for i := digits - 1; i >= 0; i-- {
		if err := bw.WriteByte(asciiBit(value>>uint(i)&1 != 0)); err != nil {
			return err
		}
	}
	return nil
}

func readASCIIBits(br *BitReader, digits int, field string) (uint64, error) {
	var value uint64
	for i := 0; i < digits; i++ {
		c, err := br.NextByte()
		if err != nil {
			return 0, headerError(err, field)
		}
		bit, ok := parseASCIIBit(c)
		if !ok {
			return 0, corrupt(-1, "invalid character %q in %s", c, field)
		}
		value <<= 1
		if bit {
			value |= 1
		}
	}
	return value, nil
}

func readSeparator(br *BitReader, after string) error {
	c, err := br.NextByte()
	if err != nil {
		return headerError(err, "separator after "+after)
	}
	if c != separator {
		return corrupt(-1, "expected separator %q after %s, got %q", separator, after, c)
	}
	return nil
}

func headerError(err error, field string) error {
	if IsEndOfStream(err) {
		return corrupt(-1, "container truncated in %s", field)
	}
	return err
}

func asciiBit(bit bool) byte {
	if bit {
		return '1'
	}
	return '0'
}

func parseASCIIBit(c byte) (bool, bool) {
	switch c {
	case '0':
		return false, true
	case '1':
		return true, true
	}
	return false, false
}

// type payloadWriter {{{

type payloadWriter interface {
	writeCode(hc Code) error
}

func newPayloadWriter(bw *BitWriter, format Format) payloadWriter {
	if format == FormatLegacyASCII {
		return asciiPayloadWriter{bw}
	}
	return packedPayloadWriter{bw}
}

type packedPayloadWriter struct {
	bw *BitWriter
}

func (pw packedPayloadWriter) writeCode(hc Code) error {
	return pw.bw.WriteCode(hc)
}

type asciiPayloadWriter struct {
	bw *BitWriter
}

func (pw asciiPayloadWriter) writeCode(hc Code) error {
	for i := 0; i < int(hc.Size); i++ {
		if err := pw.bw.WriteByte(asciiBit(hc.Bit(i))); err != nil {
			return err
		}
	}
	return nil
}

// }}}

// type payloadReader {{{

type payloadReader interface {
	nextBit() (bool, error)
}

func newPayloadReader(br *BitReader, format Format) payloadReader {
	if format == FormatLegacyASCII {
		return asciiPayloadReader{br}
	}
	return packedPayloadReader{br}
}

type packedPayloadReader struct {
	br *BitReader
}

func (pr packedPayloadReader) nextBit() (bool, error) {
	return pr.br.NextBit()
}

type asciiPayloadReader struct {
	br *BitReader
}

func (pr asciiPayloadReader) nextBit() (bool, error) {
	c, err := pr.br.NextByte()
	if err != nil {
		return false, err
	}
	bit, ok := parseASCIIBit(c)
	if !ok {
		return false, corrupt(-1, "invalid payload character %q", c)
	}
	return bit, nil
}

// }}}
