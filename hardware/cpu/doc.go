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

// Package cpu emulates the ARM7TDMI processor core at the level of the clock.
// Every call to Step() is one clock edge. The CPU consumes the response to the
// previous bus request and produces the next bus request. The CPU has no
// knowledge of what is on the other side of the bus.
//
// Let's assume mem is an implementation of the bus.Collaborator interface with
// a program at address 0x08000000.
//
//	mc := cpu.NewCPU(0x08000000)
//
//	resp := bus.Response{Data: instructions.NOP}
//	for {
//		req, err := mc.Step(resp)
//		if err != nil {
//			return err
//		}
//		resp = mem.Access(req)
//	}
//
// The CPU models the three stage pipeline of the ARM7TDMI. Instructions are
// fetched into a prefetch queue two instructions ahead of the instruction
// being executed. This means that reading the PC gives the address of the
// current instruction plus eight in the ARM state and plus four in the Thumb
// state.
//
// Each class of instruction is executed by its own state machine. The state
// machine is advanced once per clock until it returns to step zero, at which
// point the instruction is retired and the next instruction is taken from the
// prefetch queue.
//
// Any instruction that changes the PC flushes the prefetch queue. Two clocks
// are then needed to refill the queue before the instruction at the new
// address can be executed.
//
// Thumb instructions that have an equivalent ARM instruction are translated
// when they become the current instruction and are executed by the ARM state
// machines. See the instructions package for details.
package cpu
