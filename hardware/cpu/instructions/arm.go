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

package instructions

// Class of instruction. Each class is executed by its own state machine.
type Class int

// List of valid Class values.
const (
	DataProcessing Class = iota
	BranchAndExchange
	BlockTransfer
	Branch
	SoftwareInterrupt
	Undefined
	SingleDataTransfer
	SingleDataSwap
	Multiply
	MultiplyLong
	HalfwordTransfer
	PSRTransferMRS
	PSRTransferMSR

	// coprocessor instructions and encodings not used by the ARM7TDMI
	Unimplemented

	// thumb instructions with no equivalent ARM instruction
	ThumbConditionalBranch
	ThumbUnconditionalBranch
	ThumbLongBranchWithLink

	// the number of classes. used to size dispatch tables
	NumClasses
)

func (c Class) String() string {
	switch c {
	case DataProcessing:
		return "data processing"
	case BranchAndExchange:
		return "branch and exchange"
	case BlockTransfer:
		return "block data transfer"
	case Branch:
		return "branch"
	case SoftwareInterrupt:
		return "software interrupt"
	case Undefined:
		return "undefined"
	case SingleDataTransfer:
		return "single data transfer"
	case SingleDataSwap:
		return "single data swap"
	case Multiply:
		return "multiply"
	case MultiplyLong:
		return "multiply long"
	case HalfwordTransfer:
		return "halfword data transfer"
	case PSRTransferMRS:
		return "MRS"
	case PSRTransferMSR:
		return "MSR"
	case Unimplemented:
		return "unimplemented"
	case ThumbConditionalBranch:
		return "thumb conditional branch"
	case ThumbUnconditionalBranch:
		return "thumb unconditional branch"
	case ThumbLongBranchWithLink:
		return "thumb long branch with link"
	}
	return "unknown class"
}

// NOP is the ARM encoding of MOV r0, r0.
const NOP = 0xe1a00000

// UndefinedARM is an ARM instruction in the undefined instruction space. Thumb
// instructions that have no meaning are translated to this instruction.
const UndefinedARM = 0xe7f000f0

// DecodeARM returns the class of the ARM instruction.
//
// "4.1 Instruction Set Summary" in "ARM7TDMI Data Sheet"
func DecodeARM(opcode uint32) Class {
	if opcode&0x0ffffff0 == 0x012fff10 {
		return BranchAndExchange
	} else if opcode&0x0e000000 == 0x08000000 {
		return BlockTransfer
	} else if opcode&0x0e000000 == 0x0a000000 {
		return Branch
	} else if opcode&0x0f000000 == 0x0f000000 {
		return SoftwareInterrupt
	} else if opcode&0x0e000010 == 0x06000010 {
		return Undefined
	} else if opcode&0x0c000000 == 0x04000000 {
		return SingleDataTransfer
	} else if opcode&0x0fb00ff0 == 0x01000090 {
		return SingleDataSwap
	} else if opcode&0x0fc000f0 == 0x00000090 {
		return Multiply
	} else if opcode&0x0f8000f0 == 0x00800090 {
		return MultiplyLong
	} else if opcode&0x0e400f90 == 0x00000090 && opcode&0x60 != 0 {
		// register offset
		return HalfwordTransfer
	} else if opcode&0x0e400090 == 0x00400090 && opcode&0x60 != 0 {
		// immediate offset
		return HalfwordTransfer
	} else if opcode&0x0e000090 == 0x00000090 {
		// remaining encodings in the multiply and halfword space
		return Unimplemented
	} else if opcode&0x0fbf0000 == 0x010f0000 {
		return PSRTransferMRS
	} else if opcode&0x0db0f000 == 0x0120f000 {
		return PSRTransferMSR
	} else if opcode&0x0c000000 == 0x00000000 {
		return DataProcessing
	}

	// coprocessor data transfer, data operation and register transfer
	return Unimplemented
}
