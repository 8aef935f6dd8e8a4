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

	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/instructions"
)

// execution is the state of the instruction currently being executed. a new
// execution is created every time an instruction becomes current.
//
// decoded fields of the opcode are not stored in the execution. each step of
// a state machine decodes the fields it needs from the opcode.
type execution struct {
	class instructions.Class

	// the ARM instruction being executed. for thumb instructions this is the
	// translated instruction, unless the instruction is executed natively
	opcode uint32

	// the instruction is from the thumb instruction set
	thumb       bool
	thumbOpcode uint16

	// the PC is read word aligned
	alignPC bool

	// the current step of the state machine. zero when the instruction has
	// completed
	step int

	// general purpose counter. used by multiple-cycle instructions
	counter int

	// number of steps remaining in a pipeline refill
	refill int
}

func newExecution(opcode uint32, thumb bool) execution {
	if !thumb {
		return execution{
			class:  instructions.DecodeARM(opcode),
			opcode: opcode,
		}
	}

	op := uint16(opcode)
	exec := execution{
		class:       instructions.DecodeThumbClass(op),
		thumb:       true,
		thumbOpcode: op,
		alignPC:     instructions.AlignsPC(op),
	}

	if arm, ok := instructions.ThumbToARM(op); ok {
		exec.opcode = arm
	}

	return exec
}

func (exec execution) String() string {
	if exec.thumb {
		return fmt.Sprintf("%04x [%08x] %s (step %d)", exec.thumbOpcode, exec.opcode, exec.class, exec.step)
	}
	return fmt.Sprintf("%08x %s (step %d)", exec.opcode, exec.class, exec.step)
}

// the instruction will be retired at the end of the current clock
func (exec *execution) finish() {
	exec.step = 0
	exec.counter = 0
	exec.refill = 0
}

// handler is the state machine for a class of instructions. it is called once
// per clock until the step field of the execution is returned to zero.
//
// on entry the request is an instruction fetch. the handler changes the
// request as required.
type handler func(mc *CPU, exec *execution, req *bus.Request, resp bus.Response) error

var handlers [instructions.NumClasses]handler

func init() {
	handlers = [instructions.NumClasses]handler{
		instructions.DataProcessing:           dataProcessing,
		instructions.BranchAndExchange:        branchAndExchange,
		instructions.BlockTransfer:            blockDataTransfer,
		instructions.Branch:                   branch,
		instructions.SoftwareInterrupt:        softwareInterrupt,
		instructions.Undefined:                undefined,
		instructions.SingleDataTransfer:       singleDataTransfer,
		instructions.SingleDataSwap:           singleDataSwap,
		instructions.Multiply:                 multiply,
		instructions.MultiplyLong:             multiply,
		instructions.HalfwordTransfer:         halfwordDataTransfer,
		instructions.PSRTransferMRS:           psrTransferMRS,
		instructions.PSRTransferMSR:           psrTransferMSR,
		instructions.Unimplemented:            unimplemented,
		instructions.ThumbConditionalBranch:   thumbConditionalBranch,
		instructions.ThumbUnconditionalBranch: thumbUnconditionalBranch,
		instructions.ThumbLongBranchWithLink:  thumbLongBranchWithLink,
	}
}
