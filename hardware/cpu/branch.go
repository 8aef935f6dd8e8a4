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

// "4.4 Branch and Branch with Link (B, BL)" in "ARM7TDMI Data Sheet"
//
// three cycles. the branch target is calculated in the first cycle and the
// pipeline is refilled in the next two cycles
func branch(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	pc := mc.regs.Get(registers.PC, 0)
	offset := bits.SignExtend(exec.opcode&0x00ffffff, 24) << 2

	if bits.Get(exec.opcode, 24) {
		mc.regs.Write(registers.LR, pc+mc.instructionSize())
	}

	mc.branchTo(exec, req, pc+exec.pcBias()+offset)

	return nil
}

// "4.3 Branch and Exchange (BX)" in "ARM7TDMI Data Sheet"
//
// three cycles. an additional internal cycle is required if the instruction
// set is changed
func branchAndExchange(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	switch exec.step {
	case 0:
		rm := exec.opcode & 0x0f
		target := mc.operand(exec, rm, exec.pcBias())

		thumb := target&0x01 == 0x01
		changed := thumb != mc.regs.Thumb()
		mc.regs.SetThumb(thumb)

		if !changed {
			mc.branchTo(exec, req, target&^0x01)
			return nil
		}

		mc.regs.Write(registers.PC, target&^0x01)
		mc.flush(req)
		exec.step = 1

	case 1:
		// changing the instruction set takes an additional cycle
		mc.internal(req)
		mc.startRefill(exec)

	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	return nil
}

// "5.16 Format 16: Conditional Branch" in "ARM7TDMI Data Sheet"
//
// one cycle if the condition fails. three cycles otherwise
func thumbConditionalBranch(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	op := uint32(exec.thumbOpcode)
	if !mc.regs.CheckCondition(bits.Range(op, 11, 8)) {
		return nil
	}

	pc := mc.regs.Get(registers.PC, 0)
	offset := bits.SignExtend(op&0xff, 8) << 1
	mc.branchTo(exec, req, pc+exec.pcBias()+offset)

	return nil
}

// "5.18 Format 18: Unconditional Branch" in "ARM7TDMI Data Sheet"
func thumbUnconditionalBranch(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	op := uint32(exec.thumbOpcode)
	pc := mc.regs.Get(registers.PC, 0)
	offset := bits.SignExtend(op&0x07ff, 11) << 1
	mc.branchTo(exec, req, pc+exec.pcBias()+offset)

	return nil
}

// "5.19 Format 19: Long Branch with Link" in "ARM7TDMI Data Sheet"
//
// the instruction is made up of two halfwords that are executed as separate
// instructions. the first halfword takes one cycle and the second halfword
// takes three cycles
func thumbLongBranchWithLink(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	op := uint32(exec.thumbOpcode)
	pc := mc.regs.Get(registers.PC, 0)
	offset := op & 0x07ff

	if !bits.Get(op, 11) {
		// high part of offset
		mc.regs.Write(registers.LR, pc+exec.pcBias()+(bits.SignExtend(offset, 11)<<12))
		return nil
	}

	// low part of offset. the link register is the address of the next
	// instruction with the thumb bit set
	target := mc.regs.Get(registers.LR, 0) + (offset << 1)
	mc.regs.Write(registers.LR, (pc+2)|0x01)
	mc.branchTo(exec, req, target)

	return nil
}
