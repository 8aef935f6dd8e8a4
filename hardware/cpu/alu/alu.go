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

// Opcode is the data processing operation. Bits 21 to 24 of an ARM data
// processing instruction.
type Opcode uint32

// List of valid Opcode values.
const (
	AND Opcode = iota
	EOR
	SUB
	RSB
	ADD
	ADC
	SBC
	RSC
	TST
	TEQ
	CMP
	CMN
	ORR
	MOV
	BIC
	MVN
)

var mnemonics = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

func (op Opcode) String() string {
	return mnemonics[op&0x0f]
}

// IsTest returns true for the opcodes that only set the flags and never write
// a result.
func (op Opcode) IsTest() bool {
	return op >= TST && op <= CMN
}

// IsLogical returns true for the opcodes where the carry flag comes from the
// barrel shifter rather than the ALU. The overflow flag is not affected by
// logical opcodes.
func (op Opcode) IsLogical() bool {
	switch op {
	case AND, EOR, TST, TEQ, ORR, MOV, BIC, MVN:
		return true
	}
	return false
}

// Operation performs the data processing opcode on the two operands. The
// carryIn value is used by ADC, SBC and RSC.
//
// For logical opcodes the returned carry and overflow are always false. For
// test opcodes the result is returned but should not be written to a register.
func Operation(op1 uint32, op2 uint32, opcode Opcode, carryIn bool) (uint32, bool, bool) {
	var c uint32
	if carryIn {
		c = 1
	}

	switch opcode & 0x0f {
	case AND, TST:
		return op1 & op2, false, false
	case EOR, TEQ:
		return op1 ^ op2, false, false
	case ORR:
		return op1 | op2, false, false
	case MOV:
		return op2, false, false
	case BIC:
		return op1 &^ op2, false, false
	case MVN:
		return ^op2, false, false
	case SUB, CMP:
		return add(op1, ^op2, 1)
	case RSB:
		return add(op2, ^op1, 1)
	case ADD, CMN:
		return add(op1, op2, 0)
	case ADC:
		return add(op1, op2, c)
	case SBC:
		return add(op1, ^op2, c)
	case RSC:
		return add(op2, ^op1, c)
	}

	panic("unreachable")
}

// add is the only arithmetic operation the ALU really performs. subtraction is
// addition of the inverted operand with a carry in.
func add(a, b, c uint32) (uint32, bool, bool) {
	return a + b + c, isCarry(a, b, c), isOverflow(a, b, c)
}

// the carry out of bit 31 is calculated from the sum of the lower 31 bits and
// the top bits of the two operands
func isCarry(a, b, c uint32) bool {
	d := (a & 0x7fffffff) + (b & 0x7fffffff) + c
	d = (d >> 31) + (a >> 31) + (b >> 31)
	return d&0x02 == 0x02
}

// overflow is the carry into bit 31 exclusive-or'd with the carry out of bit 31
func isOverflow(a, b, c uint32) bool {
	d := (a & 0x7fffffff) + (b & 0x7fffffff) + c
	d >>= 31
	e := (d & 0x01) + ((a >> 31) & 0x01) + ((b >> 31) & 0x01)
	e >>= 1
	return (d^e)&0x01 == 0x01
}
