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
	"strings"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/instructions"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/registers"
	"github.com/jetsetilly/arm7tdmi/logger"
)

// DefaultResetVector is the address of the first instruction fetched after a
// reset, unless another address is specified.
const DefaultResetVector = 0x08000000

// CPU implements the ARM7TDMI. Register logic is implemented by the File type
// in the registers sub-package.
type CPU struct {
	regs *registers.File

	// the address of the first instruction fetch after a reset
	resetVector uint32

	// instructions that have been fetched but which are not yet being
	// executed. there is never more than two instructions in the queue
	queue []uint32

	// the instruction currently being executed
	exec execution

	// whether the data in the next response should be added to the prefetch
	// queue. this is false if the previous request was not an instruction
	// fetch or if the instruction fetch has been made redundant by a change
	// in the PC
	dataIsFetch bool

	// the most recent request. returned unchanged when the response asks the
	// CPU to wait
	lastRequest bus.Request

	// address of the most recent request. many multi-cycle instructions use
	// this to calculate the next address in a sequence
	lastAddress uint32

	// the error that halted the CPU
	halted error

	// number of instructions retired since the last reset
	retired uint64

	// HaltOnUndefined causes the CPU to halt with an error rather than take the
	// undefined instruction exception
	HaltOnUndefined bool
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// resetVector is the address of the first instruction fetch.
func NewCPU(resetVector uint32) *CPU {
	mc := &CPU{
		regs:        registers.NewFile(),
		resetVector: resetVector,
		queue:       make([]uint32, 0, 3),
	}
	mc.Reset()
	return mc
}

// SetResetVector changes the address of the first instruction fetch. The
// change takes effect on the next reset.
func (mc *CPU) SetResetVector(resetVector uint32) {
	mc.resetVector = resetVector
}

// ResetVector returns the address of the first instruction fetch after a
// reset.
func (mc *CPU) ResetVector() uint32 {
	return mc.resetVector
}

// Reset the CPU to its initial state. The instruction at the reset vector
// will be the third instruction to be executed, the first two instructions
// being the NOP instructions that fill the pipeline.
func (mc *CPU) Reset() {
	mc.regs.Reset()

	// the stored PC is the address of the current instruction. the first
	// fetch is at PC+8 and so will be the reset vector
	mc.regs.Write(registers.PC, mc.resetVector-8)

	mc.queue = mc.queue[:0]
	mc.exec = newExecution(instructions.NOP, false)
	mc.dataIsFetch = true
	mc.lastRequest = bus.Request{}
	mc.lastAddress = 0
	mc.halted = nil
	mc.retired = 0
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	n.regs = mc.regs.Snapshot()
	n.queue = make([]uint32, len(mc.queue), cap(mc.queue))
	copy(n.queue, mc.queue)
	return &n
}

func (mc *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(mc.regs.String())
	s.WriteString("\n")
	s.WriteString(mc.exec.String())
	if mc.halted != nil {
		s.WriteString(fmt.Sprintf("\nhalted: %v", mc.halted))
	}
	return s.String()
}

// Registers returns the register file. Changes to the register file take
// effect on the next clock.
func (mc *CPU) Registers() *registers.File {
	return mc.regs
}

// Halted returns the error that caused the CPU to halt. Returns nil if the CPU
// is not halted.
func (mc *CPU) Halted() error {
	return mc.halted
}

// Retired returns the number of instructions retired since the last reset.
func (mc *CPU) Retired() uint64 {
	return mc.retired
}

// Executing returns the opcode of the instruction currently being executed
// and the step of the instruction's state machine. For Thumb instructions the
// opcode is the original halfword and not the translated ARM instruction.
func (mc *CPU) Executing() (uint32, int) {
	if mc.exec.thumb {
		return uint32(mc.exec.thumbOpcode), mc.exec.step
	}
	return mc.exec.opcode, mc.exec.step
}

// InstructionAddress returns the address of the instruction currently being
// executed.
func (mc *CPU) InstructionAddress() uint32 {
	return mc.regs.Get(registers.PC, 0)
}

// Step advances the CPU by one clock. The response is the result of the
// previous request returned by Step(). The first call to Step() after a reset
// should be given a response containing a NOP instruction.
//
// If the response has the Wait field set the previous request is returned
// and the state of the CPU does not change.
//
// An error is returned if the CPU cannot continue. The CPU is then halted and
// all future calls to Step() will return the same error until Reset() is
// called.
func (mc *CPU) Step(resp bus.Response) (bus.Request, error) {
	if mc.halted != nil {
		return mc.lastRequest, mc.halted
	}

	if resp.Wait {
		return mc.lastRequest, nil
	}

	if mc.dataIsFetch {
		data := resp.Data
		if mc.lastRequest.Thumb {
			if mc.lastRequest.Address&0x02 == 0x02 {
				data >>= 16
			}
			data &= 0xffff
		}
		mc.queue = append(mc.queue, data)
	}
	mc.dataIsFetch = true

	req := mc.defaultRequest()

	err := mc.execute(&req, resp)
	if err != nil {
		mc.halted = err
		return mc.lastRequest, err
	}

	// the current instruction has completed. take the next instruction from
	// the queue and advance the PC
	if mc.exec.step == 0 {
		if len(mc.queue) == 0 {
			mc.halted = curated.Errorf(EmptyPipeline)
			return mc.lastRequest, mc.halted
		}

		next := mc.queue[0]
		mc.queue = append(mc.queue[:0], mc.queue[1:]...)

		pc := mc.regs.Get(registers.PC, 0)
		mc.regs.Write(registers.PC, pc+mc.instructionSize())

		mc.exec = newExecution(next, mc.regs.Thumb())
		mc.retired++
	}

	mc.lastAddress = req.Address
	mc.lastRequest = req

	return req, nil
}

// the request made when the current instruction does not need the bus for
// anything else. an instruction fetch two instructions ahead of the current
// instruction
func (mc *CPU) defaultRequest() bus.Request {
	req := bus.Request{
		Direction:   bus.Read,
		OpcodeFetch: true,
		Privileged:  mc.regs.Mode().Privileged(),
		Thumb:       mc.regs.Thumb(),
		Cycle:       bus.S,
	}

	if req.Thumb {
		req.Address = mc.regs.Get(registers.PC, 4)
		req.Size = bus.Halfword
	} else {
		req.Address = mc.regs.Get(registers.PC, 8)
		req.Size = bus.Word
	}

	return req
}

// execute one step of the current instruction
func (mc *CPU) execute(req *bus.Request, resp bus.Response) error {
	exec := &mc.exec

	// the instruction is refilling the pipeline after a change to the PC
	if exec.refill > 0 {
		mc.refill(exec, req)
		return nil
	}

	// conditional execution is decided before the first step. thumb
	// instructions are either unconditional or handle the condition
	// themselves
	if exec.step == 0 && !exec.thumb {
		if !mc.regs.CheckCondition(exec.opcode >> 28) {
			return nil
		}
	}

	return handlers[exec.class](mc, exec, req, resp)
}

// the size of an instruction in the current state
func (mc *CPU) instructionSize() uint32 {
	if mc.regs.Thumb() {
		return 2
	}
	return 4
}

// logging for the cpu package
func (mc *CPU) log(detail string, args ...any) {
	logger.Logf(logger.Allow, "cpu", detail, args...)
}
