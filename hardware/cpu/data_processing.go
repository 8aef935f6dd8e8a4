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
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/alu"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
)

// "4.5 Data Processing" in "ARM7TDMI Data Sheet"
//
// one cycle. plus one internal cycle if a shift was performed. plus a refill
// of the pipeline if the PC is the destination
func dataProcessing(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	rd := bits.Range(exec.opcode, 15, 12)
	opcode := alu.Opcode(bits.Range(exec.opcode, 24, 21))
	writesPC := rd == registers.PC && !opcode.IsTest()

	switch exec.step {
	case 0:
		performed, err := mc.dataProcessingOperation(exec)
		if err != nil {
			return err
		}

		if performed {
			mc.internal(req)
			exec.step = 1
			return nil
		}

		if writesPC {
			mc.flush(req)
			mc.startRefill(exec)
		}

	case 1:
		// the internal cycle following a shift
		if writesPC {
			mc.flush(req)
			mc.startRefill(exec)
			return nil
		}
		exec.finish()

	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	return nil
}

// the data processing operation is performed in the first step of the
// instruction. returns true if the barrel shifter performed a shift
func (mc *CPU) dataProcessingOperation(exec *execution) (bool, error) {
	op := exec.opcode
	opcode := alu.Opcode(bits.Range(op, 24, 21))
	setFlags := bits.Get(op, 20)
	rn := bits.Range(op, 19, 16)
	rd := bits.Range(op, 15, 12)
	carry := mc.regs.IsFlagSet(registers.C)
	bias := exec.pcBias()

	var op2 uint32
	var shiftCarry bool
	var performed bool

	if bits.Get(op, 25) {
		op2, shiftCarry = alu.RotatedImmediate(op&0xff, bits.Range(op, 11, 8), carry)
	} else {
		rm := op & 0x0f
		typ := alu.ShiftType(bits.Range(op, 6, 5))
		registerSpecified := bits.Get(op, 4)

		var amount uint32
		if registerSpecified {
			rs := bits.Range(op, 11, 8)
			if rs == registers.PC {
				return false, curated.Errorf(ForbiddenOperand, exec.class, "PC as shift register")
			}
			amount = mc.regs.Get(int(rs), 0) & 0xff

			// the PC is read a cycle later when the shift amount comes from a
			// register
			bias = exec.pcBiasLate()
		} else {
			amount = bits.Range(op, 11, 7)
		}

		op2, shiftCarry, performed = alu.BarrelShifter(mc.operand(exec, rm, bias), typ, amount, carry, registerSpecified)
	}

	op1 := mc.operand(exec, rn, bias)
	result, aluCarry, overflow := alu.Operation(op1, op2, opcode, carry)

	if !opcode.IsTest() {
		mc.regs.Write(int(rd), result)
	}

	if !setFlags && !opcode.IsTest() {
		return performed, nil
	}

	// a flag setting instruction with the PC as the destination returns from
	// an exception
	if rd == registers.PC && !opcode.IsTest() {
		spsr, err := mc.regs.SPSR()
		if err != nil {
			return false, curated.Errorf(StatusRegister, exec.class, err)
		}
		if err := mc.regs.WriteCPSR(spsr); err != nil {
			return false, curated.Errorf(StatusRegister, exec.class, err)
		}
		return performed, nil
	}

	mc.regs.SetN(bits.Get(result, 31))
	mc.regs.SetZ(result == 0)
	if opcode.IsLogical() {
		mc.regs.SetC(shiftCarry)
	} else {
		mc.regs.SetC(aluCarry)
		mc.regs.SetV(overflow)
	}

	return performed, nil
}
