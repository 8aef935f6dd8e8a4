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

package cpu

import (
	"github.com/jetsetilly/arm7tdmi/bits"
	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
)

// the multiply operations. bits 21 to 24 of the instruction
const (
	mulMUL   = 0b0000
	mulMLA   = 0b0001
	mulUMULL = 0b0100
	mulUMLAL = 0b0101
	mulSMULL = 0b0110
	mulSMLAL = 0b0111
)

// multiplierCycles returns the number of internal cycles needed by the
// multiplier array. the array processes eight bits of the Rs operand every
// cycle and stops early when the remaining bits are all zero
func multiplierCycles(rs uint32) int {
	switch bits.LeadingZeroBytes(rs) {
	case 4, 3:
		return 1
	case 2:
		return 2
	case 1:
		return 3
	}
	return 4
}

// "4.7 Multiply and Multiply-Accumulate (MUL, MLA)" and "4.8 Multiply Long and
// Multiply-Accumulate Long (MULL, MLAL)" in "ARM7TDMI Data Sheet"
//
// the result is calculated in the first cycle. the instruction then takes
// one internal cycle for every eight significant bits of Rs, plus one
// internal cycle for MLA and the long multiplies, and plus two internal
// cycles for the long accumulates. the final cycle is an instruction fetch
func multiply(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	if exec.step == 0 {
		internal, err := mc.multiplyOperation(exec)
		if err != nil {
			return err
		}
		exec.counter = internal
	}

	// all internal cycles are followed by an instruction fetch
	if exec.step < exec.counter {
		mc.internal(req)
		exec.step++
		return nil
	}

	exec.finish()
	return nil
}

// the multiply operation is performed in the first step. returns the number
// of internal cycles required by the instruction
func (mc *CPU) multiplyOperation(exec *execution) (int, error) {
	op := exec.opcode
	operation := bits.Range(op, 24, 21)
	setFlags := bits.Get(op, 20)
	rd := bits.Range(op, 19, 16)
	rn := bits.Range(op, 15, 12)
	rs := bits.Range(op, 11, 8)
	rm := op & 0x0f

	if rd == registers.PC || rs == registers.PC || rm == registers.PC {
		return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as multiply operand")
	}

	vs := mc.regs.Get(int(rs), 0)
	vm := mc.regs.Get(int(rm), 0)
	internal := multiplierCycles(vs)

	switch operation {
	case mulMUL, mulMLA:
		result := vm * vs
		if operation == mulMLA {
			if rn == registers.PC {
				return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as accumulator")
			}
			result += mc.regs.Get(int(rn), 0)
			internal++
		}
		mc.regs.Write(int(rd), result)

		if setFlags {
			mc.regs.SetN(bits.Get(result, 31))
			mc.regs.SetZ(result == 0)
		}

	case mulUMULL, mulUMLAL, mulSMULL, mulSMLAL:
		// for long multiplies the Rd field is RdHi and the Rn field is RdLo
		rdHi, rdLo := rd, rn
		if rdLo == registers.PC {
			return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as RdLo")
		}

		var result uint64
		if operation == mulSMULL || operation == mulSMLAL {
			result = uint64(int64(int32(vm)) * int64(int32(vs)))
		} else {
			result = uint64(vm) * uint64(vs)
		}
		internal++

		if operation == mulUMLAL || operation == mulSMLAL {
			acc := uint64(mc.regs.Get(int(rdHi), 0))<<32 | uint64(mc.regs.Get(int(rdLo), 0))
			result += acc
			internal++
		}

		mc.regs.Write(int(rdLo), uint32(result))
		mc.regs.Write(int(rdHi), uint32(result>>32))

		if setFlags {
			mc.regs.SetN(result&(1<<63) != 0)
			mc.regs.SetZ(result == 0)
		}

	default:
		return 0, curated.Errorf(UnimplementedInstruction, op, mc.regs.Get(registers.PC, 0))
	}

	return internal, nil
}
