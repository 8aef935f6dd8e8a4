// This file is part of arm7tdmi.
//
// arm7tdmi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm7tdmi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm7tdmi.  If not, see <https://www.gnu.org/licenses/>.

// Package bits contains small helpers for working with bit fields in 32 bit
// values. ARM encodings are described almost entirely as bit ranges and these
// functions keep the decoding code close to the wording of the reference
// manuals.
package bits

import "math/bits"

// Get returns true if bit n of v is set.
func Get(v uint32, n int) bool {
	return v&(1<<n) != 0
}

// Set returns v with bit n set.
func Set(v uint32, n int) uint32 {
	return v | (1 << n)
}

// Clear returns v with bit n cleared.
func Clear(v uint32, n int) uint32 {
	return v &^ (1 << n)
}

// Assign returns v with bit n set or cleared depending on b.
func Assign(v uint32, n int, b bool) uint32 {
	if b {
		return Set(v, n)
	}
	return Clear(v, n)
}

// Range returns the bits hi down to lo (inclusive) of v, shifted down so that
// bit lo becomes bit zero.
func Range(v uint32, hi int, lo int) uint32 {
	width := hi - lo + 1
	if width >= 32 {
		return v >> lo
	}
	return (v >> lo) & ((1 << width) - 1)
}

// SignExtend treats the low width bits of v as a two's complement value and
// extends it to 32 bits.
func SignExtend(v uint32, width int) uint32 {
	shift := 32 - width
	return uint32(int32(v<<shift) >> shift)
}

// RotateRight rotates v right by n bits. Values of n greater than 31 are taken
// modulo 32.
func RotateRight(v uint32, n int) uint32 {
	return bits.RotateLeft32(v, -(n & 31))
}

// Replicate copies the byte or halfword in the low bits of v across the whole
// word. Width must be 8 or 16, any other width returns v unchanged.
func Replicate(v uint32, width int) uint32 {
	switch width {
	case 8:
		v &= 0xff
		return v | v<<8 | v<<16 | v<<24
	case 16:
		v &= 0xffff
		return v | v<<16
	}
	return v
}

// LeadingZeroBytes returns the number of whole zero bytes at the top of v.
func LeadingZeroBytes(v uint32) int {
	return bits.LeadingZeros32(v) / 8
}

// OnesCount returns the number of set bits in v.
func OnesCount(v uint32) int {
	return bits.OnesCount32(v)
}
