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

// Package bus defines the signals exchanged between the CPU and the rest of
// the system on every clock. The CPU produces exactly one Request per clock
// and consumes exactly one Response.
//
// The naming of the fields follows the ARM7TDMI pin descriptions in spirit
// but uses positive logic throughout. For example, the active low nRW pin is
// represented by the Direction field and the active low nOPC pin by the
// OpcodeFetch field.
package bus

import (
	"fmt"
	"strings"
)

// Direction of the data transfer.
type Direction int

// List of valid Direction values.
const (
	Read Direction = iota
	Write
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// TransferSize is the width of the data transfer. The MAS[1:0] pins.
type TransferSize int

// List of valid TransferSize values.
const (
	Byte TransferSize = iota
	Halfword
	Word
)

func (s TransferSize) String() string {
	switch s {
	case Byte:
		return "byte"
	case Halfword:
		return "halfword"
	}
	return "word"
}

// Width of the transfer in bytes.
func (s TransferSize) Width() uint32 {
	switch s {
	case Byte:
		return 1
	case Halfword:
		return 2
	}
	return 4
}

// Cycle is the type of bus cycle. The nMREQ and SEQ pins.
//
// "The ARM7TDMI core bus interface can perform four different types of cycle:
// nonsequential, sequential, internal, coprocessor register transfer"
type Cycle rune

// List of valid Cycle values.
const (
	N Cycle = 'N'
	S Cycle = 'S'
	I Cycle = 'I'
	C Cycle = 'C'
)

func (c Cycle) String() string {
	return string(c)
}

// Request is made by the CPU on every clock.
type Request struct {
	Address   uint32
	Data      uint32
	Direction Direction
	Size      TransferSize

	// the request is for an instruction rather than data
	OpcodeFetch bool

	// the CPU is not in user mode or the request is not a forced user mode
	// transfer (LDRT/STRT)
	Privileged bool

	// the request is part of an atomic read-write sequence (SWP)
	Lock bool

	// the CPU is in Thumb state. instruction fetches are halfwords
	Thumb bool

	Cycle Cycle
}

func (r Request) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%c %-5s %08x", r.Cycle, r.Direction, r.Address))
	if r.Direction == Write {
		s.WriteString(fmt.Sprintf(" <- %08x", r.Data))
	}
	s.WriteString(fmt.Sprintf(" (%s)", r.Size))
	if r.OpcodeFetch {
		s.WriteString(" opcode")
	}
	if r.Lock {
		s.WriteString(" lock")
	}
	return s.String()
}

// IsAccess returns true if the request requires the memory to do something.
// Internal and coprocessor cycles do not.
func (r Request) IsAccess() bool {
	return r.Cycle == N || r.Cycle == S
}

// Response is made to the CPU on every clock.
type Response struct {
	Data uint32

	// the memory is not ready. the CPU will repeat the previous request
	Wait bool
}

// Collaborator is implemented by anything that can service requests made by
// the CPU.
//
// The Data field for reads should be the word aligned container for the
// address. The CPU is responsible for the realignment of bytes and
// halfwords. The Request must not be altered.
type Collaborator interface {
	Access(Request) Response
}
