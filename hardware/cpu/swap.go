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

// "4.12 Single Data Swap (SWP)" in "ARM7TDMI Data Sheet"
//
// four cycles. the read and the write are locked together on the bus
func singleDataSwap(mc *CPU, exec *execution, req *bus.Request, resp bus.Response) error {
	op := exec.opcode
	byteTransfer := bits.Get(op, 22)
	rn := bits.Range(op, 19, 16)
	rd := bits.Range(op, 15, 12)
	rm := op & 0x0f

	size := bus.Word
	if byteTransfer {
		size = bus.Byte
	}

	switch exec.step {
	case 0:
		if rn == registers.PC || rd == registers.PC || rm == registers.PC {
			return curated.Errorf(ForbiddenOperand, exec.class, "PC as swap operand")
		}
		req.Cycle = bus.N
		exec.step = 1

	case 1:
		mc.data(req, mc.regs.Get(int(rn), 0), bus.Read, size, bus.N)
		req.Lock = true
		exec.step = 2

	case 2:
		// the source register is read before the destination is written.
		// the two registers may be the same
		v := mc.regs.Get(int(rm), 0)

		if byteTransfer {
			mc.regs.Write(int(rd), byteLane(resp.Data, mc.lastAddress))
			v = bits.Replicate(v, 8)
		} else {
			mc.regs.Write(int(rd), rotateRead(resp.Data, mc.lastAddress))
		}

		mc.data(req, mc.lastAddress, bus.Write, size, bus.N)
		req.Data = v
		req.Lock = true
		exec.step = 3

	case 3:
		mc.internal(req)
		exec.finish()

	default:
		return curated.Errorf(UndefinedStep, exec.class, exec.step)
	}

	return nil
}
