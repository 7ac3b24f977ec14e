package huffpack

import (
	mathbits "math/bits"
)

// ceilDiv returns ceil(n / d) for n >= 0 and d > 0.
func ceilDiv(n int, d int) int {
	return (n + d - 1) / d
}

// bitMask returns the mask selecting bit pos of a word, counting from the
// most significant bit.
func bitMask(pos int) uint64 {
	return uint64(1) << (wordWidth - 1 - uint(pos%wordWidth))
}

// mulAdd returns a*b + c, and false if the result overflows 64 bits.
func mulAdd(a, b, c uint64) (uint64, bool) {
	hi, lo := mathbits.Mul64(a, b)
	if hi != 0 {
		return 0, false
	}
	sum, carry := mathbits.Add64(lo, c, 0)
	return sum, carry == 0
}
