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

import "fmt"

// Mode is the processor mode as stored in the bottom five bits of the CPSR.
type Mode uint32

// List of valid Mode values.
const (
	User       Mode = 0b10000
	FIQ        Mode = 0b10001
	IRQ        Mode = 0b10010
	Supervisor Mode = 0b10011
	Abort      Mode = 0b10111
	Undefined  Mode = 0b11011
	System     Mode = 0b11111
)

// ModeMask selects the mode bits in the CPSR.
const ModeMask = 0b11111

func (m Mode) String() string {
	switch m {
	case User:
		return "USR"
	case FIQ:
		return "FIQ"
	case IRQ:
		return "IRQ"
	case Supervisor:
		return "SVC"
	case Abort:
		return "ABT"
	case Undefined:
		return "UND"
	case System:
		return "SYS"
	}
	return fmt.Sprintf("%05b", uint32(m))
}

// Valid returns true if the value is one of the seven mode encodings.
func (m Mode) Valid() bool {
	switch m {
	case User, FIQ, IRQ, Supervisor, Abort, Undefined, System:
		return true
	}
	return false
}

// Privileged returns true for every mode except User.
func (m Mode) Privileged() bool {
	return m != User
}

// HasSPSR returns true if the mode has a saved program status register. User
// and System modes do not.
func (m Mode) HasSPSR() bool {
	return m != User && m != System
}

// bank returns the index into the banked r13/r14 and SPSR arrays for the
// mode. User and System modes share the unbanked registers and return -1.
func (m Mode) bank() int {
	switch m {
	case FIQ:
		return 0
	case Supervisor:
		return 1
	case Abort:
		return 2
	case IRQ:
		return 3
	case Undefined:
		return 4
	}
	return -1
}
