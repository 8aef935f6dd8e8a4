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

// "4.11 Block Data Transfer (LDM, STM)" in "ARM7TDMI Data Sheet"
//
// registers are always transferred in ascending order, lowest register to
// the lowest address, whatever the direction of the addressing mode. the
// counter field of the execution is the number of transfers requested so far.
//
// LDM takes n+2 cycles (n+4 if the PC is loaded) and STM takes n+1 cycles,
// where n is the number of registers in the list
func blockDataTransfer(mc *CPU, exec *execution, req *bus.Request, resp bus.Response) error {
	op := exec.opcode
	load := bits.Get(op, 20)
	userBank := bits.Get(op, 22)
	list := op & 0xffff
	n := transferCount(list)

	// the S bit with the PC in the list of a load is a return from exception
	// and not a user bank transfer
	if load && bits.Get(list, registers.PC) {
		userBank = false
	}

	switch exec.step {
	case 0:
		req.Cycle = bus.N
		exec.step = 1

	case 1:
		rn := bits.Range(op, 19, 16)
		if rn == registers.PC && bits.Get(op, 21) {
			return curated.Errorf(ForbiddenOperand, exec.class, "PC as base with write-back")
		}

		start, writeBack := blockAddresses(mc.regs.Get(int(rn), 0), op)

		if load {
			mc.data(req, start, bus.Read, bus.Word, bus.N)
		} else {
			// the first register is read before the write-back
			mc.data(req, start, bus.Write, bus.Word, bus.N)
			req.Data = mc.blockRead(exec, transferRegister(list, 0), userBank)
		}
		exec.counter = 1

		if bits.Get(op, 21) && !(load && bits.Get(list, int(rn))) {
			mc.regs.Write(int(rn), writeBack)
		}

		if !load && n == 1 {
			exec.finish()
			return nil
		}
		exec.step = 2

	default:
		if !load {
			mc.data(req, mc.lastAddress+4, bus.Write, bus.Word, bus.S)
			req.Data = mc.blockRead(exec, transferRegister(list, exec.counter), userBank)
			exec.counter++
			if exec.counter >= n {
				exec.finish()
				return nil
			}
			exec.step++
			return nil
		}

		// the data for the previous request has arrived
		reg := transferRegister(list, exec.counter-1)
		if userBank {
			mc.regs.WriteUser(reg, resp.Data)
		} else {
			mc.regs.Write(reg, resp.Data)
		}

		if exec.counter < n {
			mc.data(req, mc.lastAddress+4, bus.Read, bus.Word, bus.S)
			exec.counter++
			exec.step++
			return nil
		}

		// the final cycle of the load is an internal cycle
		mc.internal(req)

		if reg != registers.PC {
			exec.finish()
			return nil
		}

		if bits.Get(op, 22) {
			spsr, err := mc.regs.SPSR()
			if err != nil {
				return curated.Errorf(StatusRegister, exec.class, err)
			}
			if err := mc.regs.WriteCPSR(spsr); err != nil {
				return curated.Errorf(StatusRegister, exec.class, err)
			}
		}

		mc.queue = mc.queue[:0]
		mc.startRefill(exec)
	}

	return nil
}

// blockRead returns the value of the register for a block store. the PC is
// stored as the address of the instruction plus twelve
func (mc *CPU) blockRead(exec *execution, reg int, userBank bool) uint32 {
	if userBank {
		return mc.regs.GetUser(reg, exec.pcBiasLate())
	}
	return mc.regs.Get(reg, exec.pcBiasLate())
}

// transferCount returns the number of transfers for the register list. an
// empty list transfers the PC only
func transferCount(list uint32) int {
	if list == 0 {
		return 1
	}
	return bits.OnesCount(list)
}

// transferRegister returns the register for the nth transfer of the list
func transferRegister(list uint32, n int) int {
	if list == 0 {
		return registers.PC
	}
	for r := 0; r < registers.NumRegisters; r++ {
		if bits.Get(list, r) {
			if n == 0 {
				return r
			}
			n--
		}
	}
	return registers.PC
}

// blockAddresses returns the lowest address of the transfer and the value of
// the base register after write-back. an empty register list moves the base
// register as though all sixteen registers were transferred
func blockAddresses(base uint32, op uint32) (uint32, uint32) {
	preIndex := bits.Get(op, 24)
	up := bits.Get(op, 23)

	size := uint32(bits.OnesCount(op&0xffff)) * 4
	if op&0xffff == 0 {
		size = 0x40
	}

	if up {
		if preIndex {
			return base + 4, base + size
		}
		return base, base + size
	}

	if preIndex {
		return base - size, base - size
	}
	return base - size + 4, base - size
}
