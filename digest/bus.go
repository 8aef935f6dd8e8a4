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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/arm7tdmi/hardware/bus"
)

// the number of bytes required to encode a request and its response
const eventLen = 16

// Bus is a bus.Collaborator that creates a digest of every request passed to
// it and every response returned by the collaborator it wraps.
type Bus struct {
	collaborator bus.Collaborator

	digest [sha1.Size]byte

	// the previous digest followed by the encoded event
	event [sha1.Size + eventLen]byte

	events uint64
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(collaborator bus.Collaborator) *Bus {
	return &Bus{collaborator: collaborator}
}

// Hash implements the Digest interface.
func (dig *Bus) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Bus) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.events = 0
}

// Events returns the number of requests since the last reset.
func (dig *Bus) Events() uint64 {
	return dig.events
}

// Access implements the bus.Collaborator interface.
func (dig *Bus) Access(req bus.Request) bus.Response {
	resp := dig.collaborator.Access(req)

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the event data
	copy(dig.event[:], dig.digest[:])

	e := dig.event[sha1.Size:]
	binary.LittleEndian.PutUint32(e[0:], req.Address)
	binary.LittleEndian.PutUint32(e[4:], req.Data)
	binary.LittleEndian.PutUint32(e[8:], resp.Data)
	e[12] = byte(req.Cycle)
	e[13] = byte(req.Direction)<<4 | byte(req.Size)
	e[14] = flags(req.OpcodeFetch, req.Privileged, req.Lock, req.Thumb)
	e[15] = flags(resp.Wait)

	dig.digest = sha1.Sum(dig.event[:])
	dig.events++

	return resp
}

func flags(f ...bool) byte {
	var b byte
	for i, v := range f {
		if v {
			b |= 1 << i
		}
	}
	return b
}
