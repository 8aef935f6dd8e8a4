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

// ThumbFormat is one of the nineteen Thumb instruction formats.
//
// "5.1 Format Summary" in "ARM7TDMI Data Sheet"
type ThumbFormat int

// List of valid ThumbFormat values. The value of each format is the same as
// the number in the data sheet.
const (
	ThumbUndefined ThumbFormat = iota
	MoveShiftedRegister
	AddSubtract
	MovCmpAddSubImm
	ALUOperations
	HiRegisterOps
	PCRelativeLoad
	LoadStoreRegisterOffset
	LoadStoreSignExtended
	LoadStoreImmOffset
	LoadStoreHalfword
	SPRelativeLoadStore
	LoadAddress
	AddOffsetToSP
	PushPopRegisters
	MultipleLoadStore
	ConditionalBranch
	ThumbSoftwareInterrupt
	UnconditionalBranch
	LongBranchWithLink
)

func (f ThumbFormat) String() string {
	switch f {
	case MoveShiftedRegister:
		return "move shifted register"
	case AddSubtract:
		return "add/subtract"
	case MovCmpAddSubImm:
		return "move/compare/add/subtract immediate"
	case ALUOperations:
		return "ALU operations"
	case HiRegisterOps:
		return "hi register operations/branch exchange"
	case PCRelativeLoad:
		return "PC-relative load"
	case LoadStoreRegisterOffset:
		return "load/store with register offset"
	case LoadStoreSignExtended:
		return "load/store sign-extended byte/halfword"
	case LoadStoreImmOffset:
		return "load/store with immediate offset"
	case LoadStoreHalfword:
		return "load/store halfword"
	case SPRelativeLoadStore:
		return "SP-relative load/store"
	case LoadAddress:
		return "load address"
	case AddOffsetToSP:
		return "add offset to stack pointer"
	case PushPopRegisters:
		return "push/pop registers"
	case MultipleLoadStore:
		return "multiple load/store"
	case ConditionalBranch:
		return "conditional branch"
	case ThumbSoftwareInterrupt:
		return "software interrupt"
	case UnconditionalBranch:
		return "unconditional branch"
	case LongBranchWithLink:
		return "long branch with link"
	}
	return "undefined"
}

// DecodeThumb returns the format of the Thumb instruction.
func DecodeThumb(opcode uint16) ThumbFormat {
	// working backwards up the table in Figure 5-1 of the ARM7TDMI Data Sheet
	if opcode&0xf000 == 0xf000 {
		return LongBranchWithLink
	} else if opcode&0xf800 == 0xe000 {
		return UnconditionalBranch
	} else if opcode&0xff00 == 0xdf00 {
		return ThumbSoftwareInterrupt
	} else if opcode&0xf000 == 0xd000 {
		return ConditionalBranch
	} else if opcode&0xf000 == 0xc000 {
		return MultipleLoadStore
	} else if opcode&0xf600 == 0xb400 {
		return PushPopRegisters
	} else if opcode&0xff00 == 0xb000 {
		return AddOffsetToSP
	} else if opcode&0xf000 == 0xa000 {
		return LoadAddress
	} else if opcode&0xf000 == 0x9000 {
		return SPRelativeLoadStore
	} else if opcode&0xf000 == 0x8000 {
		return LoadStoreHalfword
	} else if opcode&0xe000 == 0x6000 {
		return LoadStoreImmOffset
	} else if opcode&0xf200 == 0x5200 {
		return LoadStoreSignExtended
	} else if opcode&0xf200 == 0x5000 {
		return LoadStoreRegisterOffset
	} else if opcode&0xf800 == 0x4800 {
		return PCRelativeLoad
	} else if opcode&0xfc00 == 0x4400 {
		return HiRegisterOps
	} else if opcode&0xfc00 == 0x4000 {
		return ALUOperations
	} else if opcode&0xe000 == 0x2000 {
		return MovCmpAddSubImm
	} else if opcode&0xf800 == 0x1800 {
		return AddSubtract
	} else if opcode&0xe000 == 0x0000 {
		return MoveShiftedRegister
	}

	return ThumbUndefined
}

// DecodeThumbClass returns the execution class of the Thumb instruction. For
// formats that are translated to ARM, the class is the class of the
// translated instruction.
func DecodeThumbClass(opcode uint16) Class {
	switch DecodeThumb(opcode) {
	case ConditionalBranch:
		if opcode&0x0f00 == 0x0e00 {
			return Undefined
		}
		return ThumbConditionalBranch
	case UnconditionalBranch:
		return ThumbUnconditionalBranch
	case LongBranchWithLink:
		return ThumbLongBranchWithLink
	}
	arm, _ := ThumbToARM(opcode)
	return DecodeARM(arm)
}

// AlignsPC returns true if the Thumb instruction reads the PC as a word
// aligned value. In other words (PC+4) with bit 1 cleared.
func AlignsPC(opcode uint16) bool {
	switch DecodeThumb(opcode) {
	case PCRelativeLoad:
		return true
	case LoadAddress:
		return opcode&0x0800 == 0
	}
	return false
}

// ThumbToARM translates the Thumb instruction to the equivalent ARM
// instruction. The function returns false if the instruction has no
// equivalent and must be executed natively.
//
// Thumb instructions with no meaning are translated to UndefinedARM.
//
// "5.1 Format Summary" in "ARM7TDMI Data Sheet"
func ThumbToARM(opcode uint16) (uint32, bool) {
	op := uint32(opcode)

	switch DecodeThumb(opcode) {
	case MoveShiftedRegister:
		// MOVS Rd, Rs, <shift> #Offset5
		typ := (op >> 11) & 0x03
		off := (op >> 6) & 0x1f
		rs := (op >> 3) & 0x07
		rd := op & 0x07
		return 0xe1b00000 | rd<<12 | off<<7 | typ<<5 | rs, true

	case AddSubtract:
		immediate := op&0x0400 == 0x0400
		subtract := op&0x0200 == 0x0200
		rn := (op >> 6) & 0x07
		rs := (op >> 3) & 0x07
		rd := op & 0x07

		var arm uint32
		if subtract {
			arm = 0xe0500000
		} else {
			arm = 0xe0900000
		}
		if immediate {
			arm |= 0x02000000
		}
		return arm | rs<<16 | rd<<12 | rn, true

	case MovCmpAddSubImm:
		rd := (op >> 8) & 0x07
		imm := op & 0xff
		switch (op >> 11) & 0x03 {
		case 0b00:
			// MOVS Rd, #Offset8
			return 0xe3b00000 | rd<<12 | imm, true
		case 0b01:
			// CMP Rd, #Offset8
			return 0xe3500000 | rd<<16 | imm, true
		case 0b10:
			// ADDS Rd, Rd, #Offset8
			return 0xe2900000 | rd<<16 | rd<<12 | imm, true
		}
		// SUBS Rd, Rd, #Offset8
		return 0xe2500000 | rd<<16 | rd<<12 | imm, true

	case ALUOperations:
		rs := (op >> 3) & 0x07
		rd := op & 0x07
		switch (op >> 6) & 0x0f {
		case 0b0000:
			// ANDS Rd, Rd, Rs
			return 0xe0100000 | rd<<16 | rd<<12 | rs, true
		case 0b0001:
			// EORS Rd, Rd, Rs
			return 0xe0300000 | rd<<16 | rd<<12 | rs, true
		case 0b0010:
			// MOVS Rd, Rd, LSL Rs
			return 0xe1b00010 | rd<<12 | rs<<8 | 0b00<<5 | rd, true
		case 0b0011:
			// MOVS Rd, Rd, LSR Rs
			return 0xe1b00010 | rd<<12 | rs<<8 | 0b01<<5 | rd, true
		case 0b0100:
			// MOVS Rd, Rd, ASR Rs
			return 0xe1b00010 | rd<<12 | rs<<8 | 0b10<<5 | rd, true
		case 0b0101:
			// ADCS Rd, Rd, Rs
			return 0xe0b00000 | rd<<16 | rd<<12 | rs, true
		case 0b0110:
			// SBCS Rd, Rd, Rs
			return 0xe0d00000 | rd<<16 | rd<<12 | rs, true
		case 0b0111:
			// MOVS Rd, Rd, ROR Rs
			return 0xe1b00010 | rd<<12 | rs<<8 | 0b11<<5 | rd, true
		case 0b1000:
			// TST Rd, Rs
			return 0xe1100000 | rd<<16 | rs, true
		case 0b1001:
			// RSBS Rd, Rs, #0
			return 0xe2700000 | rs<<16 | rd<<12, true
		case 0b1010:
			// CMP Rd, Rs
			return 0xe1500000 | rd<<16 | rs, true
		case 0b1011:
			// CMN Rd, Rs
			return 0xe1700000 | rd<<16 | rs, true
		case 0b1100:
			// ORRS Rd, Rd, Rs
			return 0xe1900000 | rd<<16 | rd<<12 | rs, true
		case 0b1101:
			// MULS Rd, Rs, Rd
			return 0xe0100090 | rd<<16 | rd<<8 | rs, true
		case 0b1110:
			// BICS Rd, Rd, Rs
			return 0xe1d00000 | rd<<16 | rd<<12 | rs, true
		}
		// MVNS Rd, Rs
		return 0xe1f00000 | rd<<12 | rs, true

	case HiRegisterOps:
		rs := (op >> 3) & 0x0f
		rd := (op & 0x07) | (op>>4)&0x08
		switch (op >> 8) & 0x03 {
		case 0b00:
			// ADD Rd, Rd, Rs
			return 0xe0800000 | rd<<16 | rd<<12 | rs, true
		case 0b01:
			// CMP Rd, Rs
			return 0xe1500000 | rd<<16 | rs, true
		case 0b10:
			// MOV Rd, Rs
			return 0xe1a00000 | rd<<12 | rs, true
		}
		// BX Rs
		return 0xe12fff10 | rs, true

	case PCRelativeLoad:
		// LDR Rd, [PC, #Imm]
		rd := (op >> 8) & 0x07
		return 0xe59f0000 | rd<<12 | (op&0xff)<<2, true

	case LoadStoreRegisterOffset:
		// LDR/STR{B} Rd, [Rb, Ro]
		load := (op >> 11) & 0x01
		byteTransfer := (op >> 10) & 0x01
		ro := (op >> 6) & 0x07
		rb := (op >> 3) & 0x07
		rd := op & 0x07
		return 0xe7800000 | byteTransfer<<22 | load<<20 | rb<<16 | rd<<12 | ro, true

	case LoadStoreSignExtended:
		// STRH/LDRH/LDSB/LDSH Rd, [Rb, Ro]
		h := (op >> 11) & 0x01
		s := (op >> 10) & 0x01
		ro := (op >> 6) & 0x07
		rb := (op >> 3) & 0x07
		rd := op & 0x07

		var load, bits uint32
		switch {
		case s == 0 && h == 0:
			// STRH
			load, bits = 0, 0b01
		case s == 0 && h == 1:
			// LDRH
			load, bits = 1, 0b01
		case s == 1 && h == 0:
			// LDSB
			load, bits = 1, 0b10
		default:
			// LDSH
			load, bits = 1, 0b11
		}
		return 0xe1800090 | load<<20 | rb<<16 | rd<<12 | bits<<5 | ro, true

	case LoadStoreImmOffset:
		// LDR/STR{B} Rd, [Rb, #Imm]
		byteTransfer := (op >> 12) & 0x01
		load := (op >> 11) & 0x01
		off := (op >> 6) & 0x1f
		rb := (op >> 3) & 0x07
		rd := op & 0x07
		if byteTransfer == 0 {
			off <<= 2
		}
		return 0xe5800000 | byteTransfer<<22 | load<<20 | rb<<16 | rd<<12 | off, true

	case LoadStoreHalfword:
		// LDRH/STRH Rd, [Rb, #Imm]
		load := (op >> 11) & 0x01
		off := ((op >> 6) & 0x1f) << 1
		rb := (op >> 3) & 0x07
		rd := op & 0x07
		return 0xe1c000b0 | load<<20 | rb<<16 | rd<<12 | (off>>4)<<8 | off&0x0f, true

	case SPRelativeLoadStore:
		// LDR/STR Rd, [SP, #Imm]
		load := (op >> 11) & 0x01
		rd := (op >> 8) & 0x07
		return 0xe58d0000 | load<<20 | rd<<12 | (op&0xff)<<2, true

	case LoadAddress:
		// ADD Rd, PC/SP, #Imm. the rotate field of 15 is a shift left of two
		rd := (op >> 8) & 0x07
		if op&0x0800 == 0x0800 {
			return 0xe28d0f00 | rd<<12 | op&0xff, true
		}
		return 0xe28f0f00 | rd<<12 | op&0xff, true

	case AddOffsetToSP:
		// ADD/SUB SP, SP, #Imm
		if op&0x0080 == 0x0080 {
			return 0xe24ddf00 | op&0x7f, true
		}
		return 0xe28ddf00 | op&0x7f, true

	case PushPopRegisters:
		rlist := op & 0xff
		r := (op >> 8) & 0x01
		if op&0x0800 == 0x0800 {
			// POP {Rlist, PC} is LDMIA SP!, {Rlist, PC}
			return 0xe8bd0000 | rlist | r<<15, true
		}
		// PUSH {Rlist, LR} is STMDB SP!, {Rlist, LR}
		return 0xe92d0000 | rlist | r<<14, true

	case MultipleLoadStore:
		// LDMIA/STMIA Rb!, {Rlist}
		load := (op >> 11) & 0x01
		rb := (op >> 8) & 0x07
		return 0xe8a00000 | load<<20 | rb<<16 | op&0xff, true

	case ThumbSoftwareInterrupt:
		return 0xef000000 | op&0xff, true

	case ConditionalBranch:
		// the condition code 0b1110 is undefined in a Thumb conditional
		// branch. 0b1111 is the software interrupt
		if op&0x0f00 == 0x0e00 {
			return UndefinedARM, true
		}
		return 0, false

	case UnconditionalBranch, LongBranchWithLink:
		return 0, false
	}

	return UndefinedARM, true
}
