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

package alu

import "github.com/jetsetilly/arm7tdmi/bits"

// ShiftType is the type of shift performed by the barrel shifter.
type ShiftType uint32

// List of valid ShiftType values.
const (
	LSL ShiftType = iota
	LSR
	ASR
	ROR
)

func (s ShiftType) String() string {
	switch s & 0x03 {
	case LSL:
		return "LSL"
	case LSR:
		return "LSR"
	case ASR:
		return "ASR"
	}
	return "ROR"
}

// BarrelShifter shifts value by amount. The amount for an immediate shift is
// in the range 0 to 31 and the amount for a register specified shift is the
// bottom byte of the register.
//
// An immediate amount of zero has special meaning for LSR, ASR and ROR. LSR #0
// and ASR #0 are shifts of 32 and ROR #0 is RRX (rotate right by one through
// the carry flag).
//
// The performed value is false if the value passes through the shifter
// unchanged. In which case there is no timing penalty for the shift.
//
// "4.5.2 Shifts" in "ARM7TDMI Data Sheet"
func BarrelShifter(value uint32, typ ShiftType, amount uint32, carryIn bool, registerSpecified bool) (uint32, bool, bool) {
	if registerSpecified && amount == 0 {
		return value, carryIn, false
	}

	switch typ & 0x03 {
	case LSL:
		switch {
		case amount == 0:
			return value, carryIn, false
		case amount < 32:
			return value << amount, bits.Get(value, int(32-amount)), true
		case amount == 32:
			return 0, bits.Get(value, 0), true
		}
		return 0, false, true

	case LSR:
		switch {
		case amount == 0 || amount == 32:
			return 0, bits.Get(value, 31), true
		case amount < 32:
			return value >> amount, bits.Get(value, int(amount-1)), true
		}
		return 0, false, true

	case ASR:
		if amount == 0 || amount >= 32 {
			if bits.Get(value, 31) {
				return 0xffffffff, true, true
			}
			return 0, false, true
		}
		return uint32(int32(value) >> amount), bits.Get(value, int(amount-1)), true
	}

	// ROR
	if amount == 0 {
		// RRX
		v := value >> 1
		if carryIn {
			v |= 0x80000000
		}
		return v, bits.Get(value, 0), true
	}

	amount %= 32
	if amount == 0 {
		return value, bits.Get(value, 31), false
	}

	return bits.RotateRight(value, int(amount)), bits.Get(value, int(amount-1)), true
}

// RotatedImmediate expands the eight bit immediate value with its four bit
// rotation field, as found in data processing and MSR instructions. The
// rotation is twice the value of the field.
//
// The carry is bit 31 of the result if the rotation is not zero, otherwise the
// carry is unchanged.
func RotatedImmediate(imm uint32, rotate uint32, carryIn bool) (uint32, bool) {
	rotate = (rotate & 0x0f) * 2
	if rotate == 0 {
		return imm & 0xff, carryIn
	}
	v := bits.RotateRight(imm&0xff, int(rotate))
	return v, bits.Get(v, 31)
}
