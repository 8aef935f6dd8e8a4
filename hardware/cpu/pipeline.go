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
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
)

// flush the prefetch queue. the request is non-sequential and the data
// returned for it will be discarded
func (mc *CPU) flush(req *bus.Request) {
	req.Cycle = bus.N
	mc.queue = mc.queue[:0]
	mc.dataIsFetch = false
}

// discard the response to the request. the request is for an internal cycle
func (mc *CPU) internal(req *bus.Request) {
	req.Cycle = bus.I
	mc.dataIsFetch = false
}

// branchTo writes the new PC and flushes the prefetch queue. the pipeline
// refill begins on the next clock
func (mc *CPU) branchTo(exec *execution, req *bus.Request, address uint32) {
	mc.regs.Write(registers.PC, address)
	mc.flush(req)
	mc.startRefill(exec)
}

// the pipeline will be refilled over the next two clocks. the instruction
// completes at the end of the refill
func (mc *CPU) startRefill(exec *execution) {
	exec.step++
	exec.refill = 2
}

// refill is one step of the pipeline refill. the first step fetches the
// instruction at the PC and the second step fetches the instruction after
// that.
//
// the PC is adjusted on the final step so that the normal advance of the PC
// on instruction retirement leaves it at the address of the first fetched
// instruction
func (mc *CPU) refill(exec *execution, req *bus.Request) {
	size := mc.instructionSize()
	pc := mc.regs.Get(registers.PC, 0)

	switch exec.refill {
	case 2:
		pc &^= size - 1
		mc.regs.Write(registers.PC, pc)
		mc.fetch(req, pc)
		exec.step++
		exec.refill--
	default:
		mc.fetch(req, pc+size)
		mc.regs.Write(registers.PC, pc-size)
		exec.finish()
	}
}

// fetch changes the request to an instruction fetch of the specified address.
// the size of the fetch depends on the current state of the CPU
func (mc *CPU) fetch(req *bus.Request, address uint32) {
	req.Address = address
	req.Direction = bus.Read
	req.OpcodeFetch = true
	req.Privileged = mc.regs.Mode().Privileged()
	req.Thumb = mc.regs.Thumb()
	req.Lock = false
	req.Data = 0
	req.Cycle = bus.S
	if req.Thumb {
		req.Size = bus.Halfword
	} else {
		req.Size = bus.Word
	}
}

// data changes the request to a data access
func (mc *CPU) data(req *bus.Request, address uint32, dir bus.Direction, size bus.TransferSize, cycle bus.Cycle) {
	req.Address = address
	req.Direction = dir
	req.Size = size
	req.OpcodeFetch = false
	req.Cycle = cycle
	mc.dataIsFetch = false
}

// the value added to the PC when it is read as an operand
func (exec *execution) pcBias() uint32 {
	if exec.thumb {
		return 4
	}
	return 8
}

// the value added to the PC when it is read after the first cycle of the
// instruction. for example, when the shift amount comes from a register or
// when the PC is the value being stored
func (exec *execution) pcBiasLate() uint32 {
	if exec.thumb {
		return 4
	}
	return 12
}

// operand reads a register taking into account the PC bias and whether the
// PC should be word aligned
func (mc *CPU) operand(exec *execution, reg uint32, bias uint32) uint32 {
	v := mc.regs.Get(int(reg), bias)
	if reg == registers.PC && exec.alignPC {
		v &^= 0x02
	}
	return v
}

// rotateRead returns the value of a word read from memory. misaligned word
// reads are rotated so that the addressed byte is in the bottom byte of the
// result
func rotateRead(data uint32, address uint32) uint32 {
	return bits.RotateRight(data, int(address&0x03)*8)
}

// byteLane returns the byte at address from the word aligned container data
func byteLane(data uint32, address uint32) uint32 {
	return (data >> ((address & 0x03) * 8)) & 0xff
}

// halfwordLane returns the halfword at address from the word aligned container
// data
func halfwordLane(data uint32, address uint32) uint32 {
	return (data >> ((address & 0x02) * 8)) & 0xffff
}
