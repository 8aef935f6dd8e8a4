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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/arm7tdmi/hardware/bus"
)

// Peripheral is implemented by anything that can be mapped into an area of
// memory in place of RAM. Addresses are absolute and not relative to the
// origin of the area.
type Peripheral interface {
	// Read returns the word container for the word aligned address
	Read(address uint32) uint32

	// Write the data to the address. The data is as it appears on the bus,
	// in other words the value being written is in the lane selected by the
	// size and the low bits of the address
	Write(address uint32, data uint32, size bus.TransferSize)
}

// Area is a contiguous region of the address space.
type Area struct {
	Name     string
	Origin   uint32
	Size     uint32
	ReadOnly bool

	data       []byte
	peripheral Peripheral
}

func (a *Area) String() string {
	var kind string
	switch {
	case a.peripheral != nil:
		kind = "peripheral"
	case a.ReadOnly:
		kind = "rom"
	default:
		kind = "ram"
	}
	return fmt.Sprintf("%08x-%08x %-10s %s", a.Origin, a.Memtop(), kind, a.Name)
}

// Memtop returns the highest address in the area.
func (a *Area) Memtop() uint32 {
	return a.Origin + a.Size - 1
}

// Contains returns true if the address is in the area.
func (a *Area) Contains(address uint32) bool {
	return address >= a.Origin && address-a.Origin < a.Size
}

// overlaps returns true if the two areas share any address
func (a *Area) overlaps(b *Area) bool {
	return a.Origin <= b.Memtop() && b.Origin <= a.Memtop()
}

// read the word container of the address
func (a *Area) read(address uint32) uint32 {
	address &^= 0x03
	if a.peripheral != nil {
		return a.peripheral.Read(address)
	}
	idx := address - a.Origin
	return binary.LittleEndian.Uint32(a.data[idx : idx+4])
}

// write the lanes of data selected by the size and the low bits of address
func (a *Area) write(address uint32, data uint32, size bus.TransferSize) {
	if a.peripheral != nil {
		a.peripheral.Write(address, data, size)
		return
	}

	address &^= size.Width() - 1
	idx := address - a.Origin
	shift := (address & 0x03) * 8

	switch size {
	case bus.Byte:
		a.data[idx] = uint8(data >> shift)
	case bus.Halfword:
		binary.LittleEndian.PutUint16(a.data[idx:idx+2], uint16(data>>shift))
	default:
		binary.LittleEndian.PutUint32(a.data[idx:idx+4], data)
	}
}
