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

// "4.6 PSR Transfer (MRS, MSR)" in "ARM7TDMI Data Sheet"
//
// one cycle
func psrTransferMRS(mc *CPU, exec *execution, _ *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	rd := bits.Range(exec.opcode, 15, 12)
	if rd == registers.PC {
		return curated.Errorf(ForbiddenOperand, exec.class, "PC as destination")
	}

	if !bits.Get(exec.opcode, 22) {
		mc.regs.Write(int(rd), mc.regs.CPSR())
		return nil
	}

	spsr, err := mc.regs.SPSR()
	if err != nil {
		return curated.Errorf(StatusRegister, exec.class, err)
	}
	mc.regs.Write(int(rd), spsr)

	return nil
}

// the fields of the PSR that can be written by MSR
const (
	psrFlagsField   = 0xff000000
	psrControlField = 0x000000ff
)

// "4.6 PSR Transfer (MRS, MSR)" in "ARM7TDMI Data Sheet"
//
// one cycle. the control field can only be written in a privileged mode. the
// flags field can always be written. an invalid mode in the new value leaves
// the PSR unchanged
func psrTransferMSR(mc *CPU, exec *execution, _ *bus.Request, _ bus.Response) error {
	if exec.step != 0 {
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	op := exec.opcode
	spsr := bits.Get(op, 22)

	var v uint32
	if bits.Get(op, 25) {
		v, _ = alu.RotatedImmediate(op&0xff, bits.Range(op, 11, 8), false)
	} else {
		rm := op & 0x0f
		if rm == registers.PC {
			return curated.Errorf(ForbiddenOperand, exec.class, "PC as source")
		}
		v = mc.regs.Get(int(rm), 0)
	}

	var mask uint32
	if bits.Get(op, 19) {
		mask |= psrFlagsField
	}
	if bits.Get(op, 16) && mc.regs.Mode().Privileged() {
		mask |= psrControlField
	}

	if spsr {
		old, err := mc.regs.SPSR()
		if err != nil {
			mc.log("MSR: %v", err)
			return nil
		}
		if err := mc.regs.WriteSPSR(old&^mask | v&mask); err != nil {
			mc.log("MSR: %v", err)
		}
		return nil
	}

	old := mc.regs.CPSR()
	if err := mc.regs.WriteCPSR(old&^mask | v&mask); err != nil {
		mc.log("MSR: %v", err)
	}

	return nil
}
