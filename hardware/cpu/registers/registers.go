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

package registers

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/arm7tdmi/curated"
)

// Sentinel error patterns returned by the register file.
const (
	InvalidMode = "registers: invalid mode (%05b)"
	NoSPSR      = "registers: no SPSR in %s mode"
)

// NumRegisters is the number of general purpose registers visible at any one
// time.
const NumRegisters = 16

// the names for some of the registers.
const (
	SP = 13
	LR = 14
	PC = 15
)

// File is the ARM7TDMI register file.
type File struct {
	// the unbanked registers. also the User and System mode registers
	registers [NumRegisters]uint32

	// r8 to r14 for FIQ mode
	fiq [7]uint32

	// r13 and r14 for each mode with a bank. indexed by Mode.bank(). the
	// entry for FIQ is unused because FIQ r13 and r14 are in the fiq array
	banked [5][2]uint32

	cpsr uint32

	// indexed by Mode.bank()
	spsr [5]uint32
}

// NewFile is the preferred method of initialisation for the File type. The
// register file starts in System mode with all flags clear.
func NewFile() *File {
	r := &File{}
	r.Reset()
	return r
}

// Reset all registers to zero and put the register file into System mode.
func (r *File) Reset() {
	*r = File{}
	r.cpsr = uint32(System)
}

// Snapshot creates a copy of the register file in its current state.
func (r *File) Snapshot() *File {
	n := *r
	return &n
}

func (r *File) String() string {
	s := strings.Builder{}
	for i := 0; i < NumRegisters; i++ {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString("  ")
			}
		}
		s.WriteString(fmt.Sprintf("R%-2d: %08x", i, r.Get(i, 0)))
	}
	s.WriteString(fmt.Sprintf("\nCPSR: %08x %s %s", r.cpsr, r.FlagString(), r.Mode()))
	if r.Thumb() {
		s.WriteString(" THUMB")
	} else {
		s.WriteString(" ARM")
	}
	return s.String()
}

// FlagString returns the condition flags as a string. Upper case for a set
// flag and lower case for a clear flag.
func (r *File) FlagString() string {
	s := strings.Builder{}
	for _, f := range []Flag{N, Z, C, V} {
		if r.IsFlagSet(f) {
			s.WriteString(f.String())
		} else {
			s.WriteString(strings.ToLower(f.String()))
		}
	}
	return s.String()
}

// slot returns a pointer to the physical register for the logical register
// index in the specified mode.
func (r *File) slot(index int, mode Mode) *uint32 {
	index &= 0x0f

	switch {
	case index == PC:
		return &r.registers[PC]
	case index >= 8 && mode == FIQ:
		return &r.fiq[index-8]
	case index >= SP:
		if b := mode.bank(); b >= 0 {
			return &r.banked[b][index-SP]
		}
	}

	return &r.registers[index]
}

// Get returns the value of the register for the current mode. The bias is
// added to the value if the register is the PC, which allows the caller to
// take into account the effect of the pipeline.
func (r *File) Get(index int, bias uint32) uint32 {
	v := *r.slot(index, r.Mode())
	if index&0x0f == PC {
		v += bias
	}
	return v
}

// Write the value to the register for the current mode.
func (r *File) Write(index int, value uint32) {
	*r.slot(index, r.Mode()) = value
}

// GetUser returns the value of the User mode register regardless of the
// current mode. The PC is biased in the same way as Get().
func (r *File) GetUser(index int, bias uint32) uint32 {
	v := *r.slot(index, User)
	if index&0x0f == PC {
		v += bias
	}
	return v
}

// WriteUser writes to the User mode register regardless of the current mode.
func (r *File) WriteUser(index int, value uint32) {
	*r.slot(index, User) = value
}

// Mode returns the current processor mode.
func (r *File) Mode() Mode {
	return Mode(r.cpsr & ModeMask)
}

// CPSR returns the current program status register.
func (r *File) CPSR() uint32 {
	return r.cpsr
}

// WriteCPSR replaces the value of the current program status register. The
// register is not changed and an error is returned if the mode field is not
// valid.
func (r *File) WriteCPSR(value uint32) error {
	m := Mode(value & ModeMask)
	if !m.Valid() {
		return curated.Errorf(InvalidMode, uint32(m))
	}
	r.cpsr = value
	return nil
}

// SPSR returns the saved program status register for the current mode. User
// and System modes have no SPSR and an error is returned.
func (r *File) SPSR() (uint32, error) {
	b := r.Mode().bank()
	if b < 0 {
		return 0, curated.Errorf(NoSPSR, r.Mode())
	}
	return r.spsr[b], nil
}

// WriteSPSR replaces the saved program status register for the current mode.
// The same mode validity rule as WriteCPSR() applies. An error is returned and
// nothing is written in User and System mode.
func (r *File) WriteSPSR(value uint32) error {
	b := r.Mode().bank()
	if b < 0 {
		return curated.Errorf(NoSPSR, r.Mode())
	}
	m := Mode(value & ModeMask)
	if !m.Valid() {
		return curated.Errorf(InvalidMode, uint32(m))
	}
	r.spsr[b] = value
	return nil
}

// SwitchMode changes the mode field of the CPSR, leaving the rest of the
// register untouched.
func (r *File) SwitchMode(mode Mode) error {
	return r.WriteCPSR((r.cpsr &^ ModeMask) | uint32(mode))
}

// IsFlagSet returns the state of a single condition flag.
func (r *File) IsFlagSet(f Flag) bool {
	return r.cpsr&(1<<f) != 0
}

func (r *File) writeFlag(f Flag, set bool) {
	if set {
		r.cpsr |= 1 << f
	} else {
		r.cpsr &^= 1 << f
	}
}

// SetN sets or clears the negative flag.
func (r *File) SetN(set bool) {
	r.writeFlag(N, set)
}

// SetZ sets or clears the zero flag.
func (r *File) SetZ(set bool) {
	r.writeFlag(Z, set)
}

// SetC sets or clears the carry flag.
func (r *File) SetC(set bool) {
	r.writeFlag(C, set)
}

// SetV sets or clears the overflow flag.
func (r *File) SetV(set bool) {
	r.writeFlag(V, set)
}

// Thumb returns true if the T bit of the CPSR is set.
func (r *File) Thumb() bool {
	return r.cpsr&(1<<bitThumb) != 0
}

// SetThumb sets or clears the T bit of the CPSR.
func (r *File) SetThumb(set bool) {
	if set {
		r.cpsr |= 1 << bitThumb
	} else {
		r.cpsr &^= 1 << bitThumb
	}
}

// DisableIRQ sets the I bit of the CPSR. Interrupts are not modelled but the
// bit is set on exception entry as it would be on the real hardware.
func (r *File) DisableIRQ() {
	r.cpsr |= 1 << bitIRQ
}
