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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/arm7tdmi/digest"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/test"
)

// echoes the address of every request
type echo struct{}

func (echo) Access(req bus.Request) bus.Response {
	return bus.Response{Data: req.Address}
}

func TestBus(t *testing.T) {
	a := digest.NewBus(echo{})
	b := digest.NewBus(echo{})

	var _ digest.Digest = a

	empty := a.Hash()
	test.ExpectEquality(t, empty, b.Hash())

	req := bus.Request{Address: 0x08000000, Cycle: bus.S, Size: bus.Word, OpcodeFetch: true}

	resp := a.Access(req)
	test.ExpectEquality(t, resp.Data, 0x08000000)
	b.Access(req)
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), empty)
	test.ExpectEquality(t, a.Events(), 1)

	// the same request made twice produces a different digest
	first := a.Hash()
	a.Access(req)
	test.ExpectInequality(t, a.Hash(), first)

	// a change to any part of the request changes the digest
	req.Cycle = bus.N
	b.Access(req)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), empty)
	test.ExpectEquality(t, a.Events(), 0)
}
