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
	"fmt"

	"github.com/jetsetilly/arm7tdmi/bits"
	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
)

// the SH field of a halfword data transfer
const (
	shUnsignedHalfword = 0b01
	shSignedByte       = 0b10
	shSignedHalfword   = 0b11
)

// "4.10 Halfword and Signed Data Transfer" in "ARM7TDMI Data Sheet"
//
// loads take three cycles (five if the PC is the destination) and stores take
// two cycles. when the L bit is clear an SH field of 0b10 or 0b11 is a
// doubleword load or store (LDRD, STRD) to an even numbered register pair.
// doubleword transfers take one more cycle and must be doubleword aligned
func halfwordDataTransfer(mc *CPU, exec *execution, req *bus.Request, resp bus.Response) error {
	op := exec.opcode
	load := bits.Get(op, 20)
	sh := bits.Range(op, 6, 5)
	rd := bits.Range(op, 15, 12)

	doubleword := !load && sh != shUnsignedHalfword
	loadDoubleword := doubleword && sh == shSignedByte

	switch exec.step {
	case 0:
		if doubleword && (rd&0x01 == 0x01 || rd == registers.LR) {
			return curated.Errorf(ForbiddenOperand, exec.class, "odd register or LR as first register of pair")
		}
		req.Cycle = bus.N
		exec.step = 1

	case 1:
		// the value to store is read before the base register write-back
		v := mc.operand(exec, rd, exec.pcBiasLate())

		address, err := mc.halfwordAddress(exec)
		if err != nil {
			return err
		}
		if doubleword && address&0x07 != 0 {
			return curated.Errorf(ForbiddenOperand, exec.class, fmt.Sprintf("misaligned doubleword address (%08x)", address))
		}

		switch {
		case loadDoubleword:
			mc.data(req, address, bus.Read, bus.Word, bus.N)
			exec.step = 2

		case doubleword:
			mc.data(req, address, bus.Write, bus.Word, bus.N)
			req.Data = v
			exec.step = 2

		case load:
			size := bus.Halfword
			if sh == shSignedByte {
				size = bus.Byte
			}
			mc.data(req, address, bus.Read, size, bus.N)
			exec.step = 2

		default:
			mc.data(req, address, bus.Write, bus.Halfword, bus.N)
			req.Data = bits.Replicate(v, 16)
			exec.finish()
		}

	case 2:
		switch {
		case loadDoubleword:
			mc.regs.Write(int(rd), resp.Data)
			mc.data(req, mc.lastAddress+4, bus.Read, bus.Word, bus.S)
			exec.step = 3

		case doubleword:
			mc.data(req, mc.lastAddress+4, bus.Write, bus.Word, bus.S)
			req.Data = mc.regs.Get(int(rd+1), 0)
			exec.finish()

		default:
			mc.regs.Write(int(rd), halfwordLoad(resp.Data, mc.lastAddress, sh))
			mc.internal(req)
			if rd == registers.PC {
				mc.queue = mc.queue[:0]
				mc.startRefill(exec)
				return nil
			}
			exec.finish()
		}

	case 3:
		// second word of LDRD
		mc.regs.Write(int(rd+1), resp.Data)
		mc.internal(req)
		exec.finish()

	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	return nil
}

// halfwordLoad extracts the loaded value from the word aligned container
func halfwordLoad(data uint32, address uint32, sh uint32) uint32 {
	switch sh {
	case shSignedByte:
		return bits.SignExtend(byteLane(data, address), 8)
	case shSignedHalfword:
		// a misaligned signed halfword load reads the addressed byte
		if address&0x01 == 0x01 {
			return bits.SignExtend(byteLane(data, address), 8)
		}
		return bits.SignExtend(halfwordLane(data, address), 16)
	}

	// a misaligned unsigned halfword load is rotated
	v := halfwordLane(data, address)
	if address&0x01 == 0x01 {
		v = bits.RotateRight(v, 8)
	}
	return v
}

// halfwordAddress calculates the address of a halfword data transfer and
// performs the base register write-back
func (mc *CPU) halfwordAddress(exec *execution) (uint32, error) {
	op := exec.opcode
	preIndex := bits.Get(op, 24)
	up := bits.Get(op, 23)
	writeBack := bits.Get(op, 21)
	rn := bits.Range(op, 19, 16)

	if rn == registers.PC && (!preIndex || writeBack) {
		return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as base with write-back")
	}

	var offset uint32
	if bits.Get(op, 22) {
		offset = bits.Range(op, 11, 8)<<4 | op&0x0f
	} else {
		rm := op & 0x0f
		if rm == registers.PC {
			return 0, curated.Errorf(ForbiddenOperand, exec.class, "PC as offset register")
		}
		offset = mc.regs.Get(int(rm), 0)
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
