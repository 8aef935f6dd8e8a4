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

package instructions_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/arm7tdmi/hardware/cpu/instructions"
	"github.com/jetsetilly/arm7tdmi/test"
)

func TestDecodeARM(t *testing.T) {
	tests := []struct {
		opcode uint32
		class  instructions.Class
	}{
		{0xe1a00000, instructions.DataProcessing},    // mov r0, r0
		{0xe2811001, instructions.DataProcessing},    // add r1, r1, #1
		{0xe1a01211, instructions.DataProcessing},    // mov r1, r1, lsl r2
		{0xe12fff1e, instructions.BranchAndExchange}, // bx lr
		{0xe8bd8000, instructions.BlockTransfer},     // ldmfd sp!, {pc}
		{0xe92d4000, instructions.BlockTransfer},     // stmfd sp!, {lr}
		{0xeafffffe, instructions.Branch},            // b .
		{0xebfffffe, instructions.Branch},            // bl .
		{0xef000010, instructions.SoftwareInterrupt}, // swi 0x10
		{0xe7f000f0, instructions.Undefined},
		{0xe5901000, instructions.SingleDataTransfer}, // ldr r1, [r0]
		{0xe7d21003, instructions.SingleDataTransfer}, // ldrb r1, [r2, r3]
		{0xe1012092, instructions.SingleDataSwap},     // swp r2, r2, [r1]
		{0xe1412092, instructions.SingleDataSwap},     // swpb r2, r2, [r1]
		{0xe0000291, instructions.Multiply},           // mul r0, r1, r2
		{0xe0203291, instructions.Multiply},           // mla r0, r1, r2, r3
		{0xe0810392, instructions.MultiplyLong},       // umull r0, r1, r2, r3
		{0xe0e10392, instructions.MultiplyLong},       // smlal r0, r1, r2, r3
		{0xe1d0a2b0, instructions.HalfwordTransfer},   // ldrh r10, [r0, #0x20]
		{0xe1d0b2f2, instructions.HalfwordTransfer},   // ldrsh r11, [r0, #0x22]
		{0xe19100b2, instructions.HalfwordTransfer},   // ldrh r0, [r1, r2]
		{0xe10f0000, instructions.PSRTransferMRS},     // mrs r0, cpsr
		{0xe14f0000, instructions.PSRTransferMRS},     // mrs r0, spsr
		{0xe129f000, instructions.PSRTransferMSR},     // msr cpsr_fc, r0
		{0xe328f20f, instructions.PSRTransferMSR},     // msr cpsr_f, #0xf0000000
		{0xee000010, instructions.Unimplemented},      // mcr
		{0xed900000, instructions.Unimplemented},      // ldc
		{0xe0000090 | 0x00400000, instructions.Unimplemented},
	}

	for _, tt := range tests {
		test.ExpectEquality(t, instructions.DecodeARM(tt.opcode), tt.class, fmt.Sprintf("%08x", tt.opcode))
	}
}

func TestDecodeThumb(t *testing.T) {
	tests := []struct {
		opcode uint16
		format instructions.ThumbFormat
	}{
		{0x0088, instructions.MoveShiftedRegister},
		{0x1888, instructions.AddSubtract},
		{0x2001, instructions.MovCmpAddSubImm},
		{0x4048, instructions.ALUOperations},
		{0x4770, instructions.HiRegisterOps},
		{0x4801, instructions.PCRelativeLoad},
		{0x5088, instructions.LoadStoreRegisterOffset},
		{0x5e88, instructions.LoadStoreSignExtended},
		{0x6808, instructions.LoadStoreImmOffset},
		{0x8808, instructions.LoadStoreHalfword},
		{0x9801, instructions.SPRelativeLoadStore},
		{0xa001, instructions.LoadAddress},
		{0xb081, instructions.AddOffsetToSP},
		{0xb500, instructions.PushPopRegisters},
		{0xc803, instructions.MultipleLoadStore},
		{0xd0fe, instructions.ConditionalBranch},
		{0xdf01, instructions.ThumbSoftwareInterrupt},
		{0xe7fe, instructions.UnconditionalBranch},
		{0xf000, instructions.LongBranchWithLink},
		{0xf801, instructions.LongBranchWithLink},
		{0xe800, instructions.ThumbUndefined},
		{0xb100, instructions.ThumbUndefined},
	}

	for _, tt := range tests {
		test.ExpectEquality(t, instructions.DecodeThumb(tt.opcode), tt.format, fmt.Sprintf("%04x", tt.opcode))
	}
}

func TestThumbToARM(t *testing.T) {
	tests := []struct {
		thumb uint16
		arm   uint32
	}{
		{0x0088, 0xe1b00101}, // lsl r0, r1, #2
		{0x1888, 0xe0910002}, // add r0, r1, r2
		{0x1e48, 0xe2510001}, // sub r0, r1, #1
		{0x2005, 0xe3b00005}, // mov r0, #5
		{0x2905, 0xe3510005}, // cmp r1, #5
		{0x3201, 0xe2922001}, // add r2, #1
		{0x3b01, 0xe2533001}, // sub r3, #1
		{0x4008, 0xe0100001}, // and r0, r1
		{0x4088, 0xe1b00110}, // lsl r0, r1
		{0x4248, 0xe2710000}, // neg r0, r1
		{0x4348, 0xe0100091}, // mul r0, r1
		{0x43c8, 0xe1f00001}, // mvn r0, r1
		{0x4468, 0xe080000d}, // add r0, sp
		{0x45c0, 0xe1580008}, // cmp r8, r8
		{0x46f7, 0xe1a0f00e}, // mov pc, lr
		{0x4770, 0xe12fff1e}, // bx lr
		{0x4801, 0xe59f0004}, // ldr r0, [pc, #4]
		{0x5088, 0xe7810002}, // str r0, [r1, r2]
		{0x5c88, 0xe7d10002}, // ldrb r0, [r1, r2]
		{0x5288, 0xe18100b2}, // strh r0, [r1, r2]
		{0x5a88, 0xe19100b2}, // ldrh r0, [r1, r2]
		{0x5688, 0xe19100d2}, // ldsb r0, [r1, r2]
		{0x5e88, 0xe19100f2}, // ldsh r0, [r1, r2]
		{0x6848, 0xe5910004}, // ldr r0, [r1, #4]
		{0x7848, 0xe5d10001}, // ldrb r0, [r1, #1]
		{0x8848, 0xe1d100b2}, // ldrh r0, [r1, #2]
		{0x8c08, 0xe1d102b0}, // ldrh r0, [r1, #32]
		{0x9001, 0xe58d0004}, // str r0, [sp, #4]
		{0xa001, 0xe28f0f01}, // add r0, pc, #4
		{0xa901, 0xe28d1f01}, // add r1, sp, #4
		{0xb002, 0xe28ddf02}, // add sp, #8
		{0xb082, 0xe24ddf02}, // sub sp, #8
		{0xb503, 0xe92d4003}, // push {r0, r1, lr}
		{0xbd03, 0xe8bd8003}, // pop {r0, r1, pc}
		{0xc103, 0xe8a10003}, // stmia r1!, {r0, r1}
		{0xc903, 0xe8b10003}, // ldmia r1!, {r0, r1}
		{0xdf10, 0xef000010}, // swi 0x10
		{0xde00, instructions.UndefinedARM},
		{0xe800, instructions.UndefinedARM},
	}

	for _, tt := range tests {
		arm, ok := instructions.ThumbToARM(tt.thumb)
		test.ExpectSuccess(t, ok, fmt.Sprintf("%04x", tt.thumb))
		test.ExpectEquality(t, arm, tt.arm, fmt.Sprintf("%04x", tt.thumb))
	}

	for _, native := range []uint16{0xd0fe, 0xe7fe, 0xf000, 0xf801} {
		_, ok := instructions.ThumbToARM(native)
		test.ExpectFailure(t, ok, fmt.Sprintf("%04x", native))
	}
}

func TestThumbClass(t *testing.T) {
	test.ExpectEquality(t, instructions.DecodeThumbClass(0x2005), instructions.DataProcessing)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0x4348), instructions.Multiply)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0x4770), instructions.BranchAndExchange)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xbd03), instructions.BlockTransfer)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0x8848), instructions.HalfwordTransfer)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xd0fe), instructions.ThumbConditionalBranch)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xde00), instructions.Undefined)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xe7fe), instructions.ThumbUnconditionalBranch)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xf000), instructions.ThumbLongBranchWithLink)
	test.ExpectEquality(t, instructions.DecodeThumbClass(0xdf10), instructions.SoftwareInterrupt)
}

func TestAlignsPC(t *testing.T) {
	test.ExpectSuccess(t, instructions.AlignsPC(0x4801))
	test.ExpectSuccess(t, instructions.AlignsPC(0xa001))
	test.ExpectFailure(t, instructions.AlignsPC(0xa901))
	test.ExpectFailure(t, instructions.AlignsPC(0x6848))
}
