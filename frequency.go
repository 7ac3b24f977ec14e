package huffpack

import (
	"io"
	mathbits "math/bits"

	"github.com/nuclio/errors"
)

// FrequencyTable counts the occurrences of each byte value.
//
// FrequencyTable implements io.Writer, so an input can be counted with
// io.Copy.
//
type FrequencyTable [NumSymbols]uint64

// CountFrequencies reads r to the end and returns the frequency of each
// byte value.
func CountFrequencies(r io.Reader) (FrequencyTable, error) {
	var freqs FrequencyTable
	if _, err := io.Copy(&freqs, r); err != nil {
		return FrequencyTable{}, errors.Wrap(ioFailure("read source", err), "Failed to count symbol frequencies")
	}
	return freqs, nil
}

// Write adds every byte of p to the table.
func (freqs *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		freqs[b]++
	}
	return len(p), nil
}

// Total returns the sum of all frequencies.  The sum of a table read from
// an untrusted container may not fit in 64 bits.
func (freqs *FrequencyTable) Total() (uint64, bool) {
	var total, carry uint64
	for _, freq := range freqs {
		total, carry = mathbits.Add64(total, freq, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}

// Distinct returns the number of symbols with a non-zero frequency.
func (freqs *FrequencyTable) Distinct() int {
	var n int
	for _, freq := range freqs {
		if freq != 0 {
			n++
		}
	}
	return n
}

var _ io.Writer = (*FrequencyTable)(nil)
