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

// Package registers implements the ARM7TDMI register file. There are 37
// physical registers in the ARM7TDMI but only 16 general purpose registers
// and the CPSR are visible at any one time. Which physical registers are
// visible depends on the processor mode, which is stored in the CPSR.
//
// "2.6 Registers" in "ARM7TDMI Technical Reference Manual r4p1"
//
//	User/System  FIQ       Supervisor  Abort     IRQ       Undefined
//	R0-R7        R0-R7     R0-R7       R0-R7     R0-R7     R0-R7
//	R8-R12       R8_fiq..  R8-R12      R8-R12    R8-R12    R8-R12
//	R13          R13_fiq   R13_svc     R13_abt   R13_irq   R13_und
//	R14          R14_fiq   R14_svc     R14_abt   R14_irq   R14_und
//	R15          R15       R15         R15       R15       R15
//	CPSR         CPSR      CPSR        CPSR      CPSR      CPSR
//	             SPSR_fiq  SPSR_svc    SPSR_abt  SPSR_irq  SPSR_und
//
// The File type does not know about the instruction pipeline. The value of R15
// is whatever was last written to it and the pipeline offset must be supplied
// by the caller when reading it.
package registers
