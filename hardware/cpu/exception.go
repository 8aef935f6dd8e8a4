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
	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
)

// exception vectors
const (
	vectorUndefined         = 0x00000004
	vectorSoftwareInterrupt = 0x00000008
)

// enterException switches to the exception mode, saving the CPSR and the
// return address. the return address is the address of the instruction
// following the current instruction. the pipeline refill from the vector
// begins immediately
func (mc *CPU) enterException(exec *execution, req *bus.Request, mode registers.Mode, vector uint32) error {
	cpsr := mc.regs.CPSR()
	ret := mc.regs.Get(registers.PC, 0) + mc.instructionSize()

	if err := mc.regs.SwitchMode(mode); err != nil {
		return curated.Errorf(StatusRegister, exec.class, err)
	}
	if err := mc.regs.WriteSPSR(cpsr); err != nil {
		return curated.Errorf(StatusRegister, exec.class, err)
	}

	mc.regs.Write(registers.LR, ret)
	mc.regs.SetThumb(false)
	mc.regs.DisableIRQ()
	mc.regs.Write(registers.PC, vector)

	// first step of the refill happens in this cycle
	exec.refill = 2
	mc.refill(exec, req)

	return nil
}

// "4.13 Software Interrupt (SWI)" in "ARM7TDMI Data Sheet"
//
// three cycles. the pipeline is flushed in the first cycle, the mode changes
// in the second cycle and the refill completes in the third cycle
func softwareInterrupt(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	switch exec.step {
	case 0:
		mc.flush(req)
		exec.step = 1
	case 1:
		return mc.enterException(exec, req, registers.Supervisor, vectorSoftwareInterrupt)
	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}
	return nil
}

// "4.15 Undefined Instruction" in "ARM7TDMI Data Sheet"
//
// four cycles. as for the software interrupt but with an additional internal
// cycle before the mode change
func undefined(mc *CPU, exec *execution, req *bus.Request, _ bus.Response) error {
	switch exec.step {
	case 0:
		pc := mc.regs.Get(registers.PC, 0)
		if mc.HaltOnUndefined {
			return curated.Errorf(UndefinedInstruction, exec.opcode, pc)
		}
		if exec.thumb {
			mc.log("undefined instruction (%04x) at %08x", exec.thumbOpcode, pc)
		} else {
			mc.log("undefined instruction (%08x) at %08x", exec.opcode, pc)
		}
		mc.flush(req)
		exec.step = 1
	case 1:
		mc.internal(req)
		exec.step = 2
	case 2:
		return mc.enterException(exec, req, registers.Undefined, vectorUndefined)
	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}
	return nil
}

// coprocessor instructions and unused encodings halt the CPU
func unimplemented(mc *CPU, exec *execution, _ *bus.Request, _ bus.Response) error {
	return curated.Errorf(UnimplementedInstruction, exec.opcode, mc.regs.Get(registers.PC, 0))
}
