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

package memory

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/logger"
)

// Error patterns for memory configuration and loading.
const (
	InvalidArea    = "memory: invalid area: %s"
	OverlapArea    = "memory: area %s overlaps with area %s"
	LoadOverflow   = "memory: load of %d bytes at %08x does not fit in area %s"
	LoadUnmapped   = "memory: load at unmapped address (%08x)"
	LoadPeripheral = "memory: cannot load into peripheral area %s"
)

// Fault is a memory access that could not be completed.
type Fault struct {
	Event   string
	Address uint32
}

func (f Fault) String() string {
	return fmt.Sprintf("%s: %08x", f.Event, f.Address)
}

// Memory is the collection of memory areas that make up the address space.
// Implements the bus.Collaborator interface.
type Memory struct {
	areas []*Area

	// the number of cycles a non-sequential access must wait before it is
	// completed
	waitStates int
	waiting    int

	// the number of memory faults since the last reset and the most recent
	// fault
	faults    int
	lastFault Fault
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{}
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	for _, a := range mem.areas {
		s.WriteString(a.String())
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

// Reset the access state of the memory and the fault count. The contents of
// memory are unchanged.
func (mem *Memory) Reset() {
	mem.waiting = 0
	mem.faults = 0
	mem.lastFault = Fault{}
}

// SetWaitStates sets the number of cycles each non-sequential access will
// wait before completing. A value of zero means that all accesses complete
// immediately.
func (mem *Memory) SetWaitStates(n int) {
	if n < 0 {
		n = 0
	}
	mem.waitStates = n
	mem.waiting = 0
}

// Faults returns the number of memory faults since the last reset and the
// most recent fault.
func (mem *Memory) Faults() (int, Fault) {
	return mem.faults, mem.lastFault
}

// check that the area is well formed and does not overlap any existing area
// other than itself
func (mem *Memory) check(area *Area, self *Area) error {
	if area.Size == 0 || area.Size&0x03 != 0 || area.Origin&0x03 != 0 {
		return curated.Errorf(InvalidArea, area.Name)
	}
	if uint64(area.Origin)+uint64(area.Size) > 1<<32 {
		return curated.Errorf(InvalidArea, area.Name)
	}
	for _, a := range mem.areas {
		if a != self && a.overlaps(area) {
			return curated.Errorf(OverlapArea, area.Name, a.Name)
		}
	}
	return nil
}

func (mem *Memory) add(area *Area) error {
	if err := mem.check(area, nil); err != nil {
		return err
	}
	mem.areas = append(mem.areas, area)
	return nil
}

// Remap moves or resizes the named area. Contents are kept from the start of
// the area, up to the smaller of the old and new sizes. Peripheral areas
// cannot be remapped.
func (mem *Memory) Remap(name string, origin uint32, size uint32) error {
	var area *Area
	for _, a := range mem.areas {
		if a.Name == name && a.peripheral == nil {
			area = a
			break
		}
	}
	if area == nil {
		return curated.Errorf(InvalidArea, name)
	}
	if area.Origin == origin && area.Size == size {
		return nil
	}

	if err := mem.check(&Area{Name: name, Origin: origin, Size: size}, area); err != nil {
		return err
	}

	data := make([]byte, size)
	copy(data, area.data)
	area.Origin = origin
	area.Size = size
	area.data = data

	return nil
}

// AddArea adds an area of memory backed by a byte slice. The origin and size
// must be word aligned.
func (mem *Memory) AddArea(name string, origin uint32, size uint32, readOnly bool) error {
	return mem.add(&Area{
		Name:     name,
		Origin:   origin,
		Size:     size,
		ReadOnly: readOnly,
		data:     make([]byte, size),
	})
}

// AddPeripheral adds an area of memory that is handled by a Peripheral.
func (mem *Memory) AddPeripheral(name string, origin uint32, size uint32, p Peripheral) error {
	return mem.add(&Area{
		Name:       name,
		Origin:     origin,
		Size:       size,
		peripheral: p,
	})
}

// mapAddress returns the area containing the address. returns nil if the
// address is unmapped
func (mem *Memory) mapAddress(address uint32) *Area {
	for _, a := range mem.areas {
		if a.Contains(address) {
			return a
		}
	}
	return nil
}

// Load the data from the io.Reader into memory starting at the origin. The
// data must fit entirely in the area containing the origin. Read-only areas
// can be loaded.
func (mem *Memory) Load(origin uint32, r io.Reader) error {
	a := mem.mapAddress(origin)
	if a == nil {
		return curated.Errorf(LoadUnmapped, origin)
	}
	if a.peripheral != nil {
		return curated.Errorf(LoadPeripheral, a.Name)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}

	idx := origin - a.Origin
	if uint64(idx)+uint64(len(data)) > uint64(a.Size) {
		return curated.Errorf(LoadOverflow, len(data), origin, a.Name)
	}
	copy(a.data[idx:], data)

	logger.Logf(logger.Allow, "memory", "loaded %d bytes at %08x (%s)", len(data), origin, a.Name)

	return nil
}

// Peek returns the word container for the address without the side effects
// of a bus access. Peripherals are not consulted. Returns false if the address
// is not in a RAM or ROM area.
func (mem *Memory) Peek(address uint32) (uint32, bool) {
	a := mem.mapAddress(address)
	if a == nil || a.peripheral != nil {
		return 0, false
	}
	return a.read(address), true
}

// Poke writes a word to the word aligned address without the side effects of
// a bus access. Read-only areas can be poked.
func (mem *Memory) Poke(address uint32, data uint32) bool {
	a := mem.mapAddress(address)
	if a == nil || a.peripheral != nil {
		return false
	}
	a.write(address&^0x03, data, bus.Word)
	return true
}

// Access implements the bus.Collaborator interface.
func (mem *Memory) Access(req bus.Request) bus.Response {
	if !req.IsAccess() {
		return bus.Response{}
	}

	if req.Cycle == bus.N && mem.waiting < mem.waitStates {
		mem.waiting++
		return bus.Response{Wait: true}
	}
	mem.waiting = 0

	a := mem.mapAddress(req.Address)

	if req.Direction == bus.Read {
		if a == nil {
			mem.fault("unmapped read", req.Address)
			return bus.Response{}
		}
		return bus.Response{Data: a.read(req.Address)}
	}

	if a == nil {
		mem.fault("unmapped write", req.Address)
		return bus.Response{}
	}
	if a.ReadOnly {
		mem.fault(fmt.Sprintf("write to read-only area (%s)", a.Name), req.Address)
		return bus.Response{}
	}
	a.write(req.Address, req.Data, req.Size)

	return bus.Response{}
}

func (mem *Memory) fault(event string, address uint32) {
	mem.faults++
	mem.lastFault = Fault{Event: event, Address: address}
	logger.Logf(logger.Allow, "memory", "%s", mem.lastFault)
}
