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

package registers

// Flag is one of the condition code flags in the CPSR.
type Flag int

// List of valid Flag values. The value is the bit position in the CPSR.
const (
	N Flag = 31
	Z Flag = 30
	C Flag = 29
	V Flag = 28
)

func (f Flag) String() string {
	switch f {
	case N:
		return "N"
	case Z:
		return "Z"
	case C:
		return "C"
	case V:
		return "V"
	}
	return "?"
}

// bit positions of the control bits in the CPSR
const (
	bitThumb = 5
	bitFIQ   = 6
	bitIRQ   = 7
)

// the sixteen condition codes found in the top four bits of every ARM
// instruction and in the Thumb conditional branch.
//
// "4.2 The Condition Field" in "ARM7TDMI Data Sheet"
var conditionMnemonics = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
}

// ConditionMnemonic returns the two letter mnemonic for the condition code.
func ConditionMnemonic(code uint32) string {
	return conditionMnemonics[code&0x0f]
}

// CheckCondition returns true if the condition code passes with the current
// state of the flags.
//
// The code 0b1111 (NV) is reserved on the ARM7TDMI. It is treated as always
// passing, the same as AL.
func (r *File) CheckCondition(code uint32) bool {
	n := r.IsFlagSet(N)
	z := r.IsFlagSet(Z)
	c := r.IsFlagSet(C)
	v := r.IsFlagSet(V)

	switch code & 0x0f {
	case 0b0000: // EQ
		return z
	case 0b0001: // NE
		return !z
	case 0b0010: // CS
		return c
	case 0b0011: // CC
		return !c
	case 0b0100: // MI
		return n
	case 0b0101: // PL
		return !n
	case 0b0110: // VS
		return v
	case 0b0111: // VC
		return !v
	case 0b1000: // HI
		return c && !z
	case 0b1001: // LS
		return !c || z
	case 0b1010: // GE
		return n == v
	case 0b1011: // LT
		return n != v
	case 0b1100: // GT
		return !z && n == v
	case 0b1101: // LE
		return z || n != v
	}

	// AL and NV
	return true
}
