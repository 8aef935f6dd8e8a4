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

// "4.9 Single Data Transfer (LDR, STR)" in "ARM7TDMI Data Sheet"
//
// LDR takes three cycles. five cycles if the PC is the destination. STR takes
// two cycles
func singleDataTransfer(mc *CPU, exec *execution, req *bus.Request, resp bus.Response) error {
	op := exec.opcode
	load := bits.Get(op, 20)
	byteTransfer := bits.Get(op, 22)
	rd := bits.Range(op, 15, 12)

	switch exec.step {
	case 0:
		// the instruction fetch in the first cycle is non-sequential because
		// the next cycle is a data access
		req.Cycle = bus.N
		exec.step = 1

	case 1:
		// the value to store is read before the base register write-back
		v := mc.operand(exec, rd, exec.pcBiasLate())
		if byteTransfer {
			v = bits.Replicate(v, 8)
		}

		address, err := mc.transferAddress(exec)
		if err != nil {
			return err
		}

		size := bus.Word
		if byteTransfer {
			size = bus.Byte
		}

		// post-indexed with the write-back bit set is a forced user mode
		// transfer (LDRT, STRT)
		forceUser := !bits.Get(op, 24) && bits.Get(op, 21)

		if load {
			mc.data(req, address, bus.Read, size, bus.N)
			if forceUser {
				req.Privileged = false
			}
			exec.step = 2
			return nil
		}

		mc.data(req, address, bus.Write, size, bus.N)
		req.Data = v
		if forceUser {
			req.Privileged = false
		}
		exec.finish()

	case 2:
		// the data arrives in the third cycle and is written to the
		// destination register
		var v uint32
		if byteTransfer {
			v = byteLane(resp.Data, mc.lastAddress)
		} else {
			v = rotateRead(resp.Data, mc.lastAddress)
		}
		mc.regs.Write(int(rd), v)
		mc.internal(req)

		if rd == registers.PC {
			mc.queue = mc.queue[:0]
			mc.startRefill(exec)
			return nil
		}
		exec.finish()

	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	return nil
}

// transferAddress calculates the address of a single data transfer and
// performs the base register write-back. the write-back happens before the
// data arrives so a load into the base register takes precedence
func (mc *CPU) transferAddress(exec *execution) (uint32, error) {
	op := exec.opcode
	preIndex := bits.Get(op, 24)
	up := bits.Get(op, 23)
	writeBack := bits.Get(op, 21)
	rn := bits.Range(op, 19, 16)

	if rn == registers.PC && (!preIndex || writeBack) {
		return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as base with write-back")
	}

	var offset uint32
	if bits.Get(op, 25) {
		rm := op & 0x0f
		if rm == registers.PC {
			return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as offset register")
		}
		typ := alu.ShiftType(bits.Range(op, 6, 5))
		amount := bits.Range(op, 11, 7)
		offset, _, _ = alu.BarrelShifter(mc.regs.Get(int(rm), 0), typ, amount, mc.regs.IsFlagSet(registers.C), false)
	} else {
		offset = op & 0xfff
	}

	base := mc.operand(exec, rn, exec.pcBias())
	indexed := base - offset
	if up {
		indexed = base + offset
	}

	address := base
	if preIndex {
		address = indexed
	}

	if !preIndex || writeBack {
		mc.regs.Write(int(rn), indexed)
	}

	return address, nil
}
