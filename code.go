package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/nuclio/errors"
)

// Code represents a sequence of up to MaxCodeSize bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// bits holds the values of the bits.  The first bit is the most
	// significant bit of bits[0].
	bits [4]uint64
}

// ParseCode constructs a Code from a string of '0' and '1' characters.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, errors.Errorf("Code %q is longer than %d bits", str, MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, errors.Errorf("Invalid bit character %q in code %q", str[i], str)
		}
	}
	return hc, nil
}

// MustParseCode is like ParseCode but panics on error.
func MustParseCode(str string) Code {
	hc, err := ParseCode(str)
	if err != nil {
		panic(err)
	}
	return hc
}

// Append returns the Code extended by one bit.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	if bit {
		pos := int(hc.Size)
		hc.bits[pos/wordWidth] |= bitMask(pos)
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of the Code.
func (hc Code) Bit(i int) bool {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit %d out of range for code of %d bits", i, hc.Size)
	return hc.bits[i/wordWidth]&bitMask(i) != 0
}

// HasPrefix reports whether prefix is a prefix of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := 0; i < int(prefix.Size); i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// Bits returns the bits as an unquoted string of '0' and '1' characters.
func (hc Code) Bits() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	return strconv.Quote(hc.Bits())
}

var _ fmt.Stringer = Code{}

// CodeTable maps each symbol to its Code.  Symbols that were never seen
// have a zero-sized entry.
type CodeTable [NumSymbols]Code

// Lookup returns the Code for symbol, if it has one.
func (table *CodeTable) Lookup(symbol byte) (Code, bool) {
	hc := table[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols with a Code.
func (table *CodeTable) Len() int {
	var n int
	for symbol := range table {
		if table[symbol].Size != 0 {
			n++
		}
	}
	return n
}

// EncodedSize returns the number of payload bits needed to encode an input
// with the given frequencies.
func (table *CodeTable) EncodedSize(freqs *FrequencyTable) (uint64, error) {
	var total uint64
	for symbol, freq := range freqs {
		if freq == 0 {
			continue
		}
		hc := table[symbol]
		if hc.Size == 0 {
			return 0, &EncodingError{Symbol: symbol, Reason: "no code assigned"}
		}
		bits, ok := mulAdd(freq, uint64(hc.Size), total)
		if !ok {
			return 0, &EncodingError{Symbol: -1, Reason: "payload bit count overflows 64 bits"}
		}
		total = bits
	}
	return total, nil
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for symbol := range table {
		hc := table[symbol]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
