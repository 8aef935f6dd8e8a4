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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/instructions"
	"github.com/jetsetilly/arm7tdmi/test"
)

const resetVector = cpu.DefaultResetVector

// testMemory is a word addressed memory. addresses that have not been
// written read as a NOP instruction
type testMemory struct {
	words map[uint32]uint32

	// number of clocks the memory waits before completing an access
	waitStates int
	waiting    int
}

func newTestMemory(words map[uint32]uint32) *testMemory {
	mem := &testMemory{
		words: make(map[uint32]uint32),
	}
	for a, v := range words {
		mem.words[a] = v
	}
	return mem
}

func (mem *testMemory) read(address uint32) uint32 {
	if v, ok := mem.words[address&^0x03]; ok {
		return v
	}
	return instructions.NOP
}

func (mem *testMemory) Access(req bus.Request) bus.Response {
	if !req.IsAccess() {
		return bus.Response{}
	}

	if mem.waiting < mem.waitStates {
		mem.waiting++
		return bus.Response{Wait: true}
	}
	mem.waiting = 0

	address := req.Address &^ 0x03

	if req.Direction == bus.Read {
		return bus.Response{Data: mem.read(address)}
	}

	var mask uint32
	switch req.Size {
	case bus.Byte:
		mask = 0xff << ((req.Address & 0x03) * 8)
	case bus.Halfword:
		mask = 0xffff << ((req.Address & 0x02) * 8)
	default:
		mask = 0xffffffff
	}
	// partial writes to unwritten memory merge with zero
	mem.words[address] = mem.words[address]&^mask | req.Data&mask

	return bus.Response{}
}

// harness drives the CPU with the test memory
type harness struct {
	t    *testing.T
	mc   *cpu.CPU
	mem  *testMemory
	resp bus.Response

	// every request made by the CPU
	requests []bus.Request
}

func newHarness(t *testing.T, words map[uint32]uint32) *harness {
	t.Helper()
	return &harness{
		t:    t,
		mc:   cpu.NewCPU(resetVector),
		mem:  newTestMemory(words),
		resp: bus.Response{Data: instructions.NOP},
	}
}

func (h *harness) step() (bus.Request, error) {
	req, err := h.mc.Step(h.resp)
	if err != nil {
		return req, err
	}
	h.requests = append(h.requests, req)
	h.resp = h.mem.Access(req)
	return req, nil
}

// run the CPU for the number of clocks. fails the test on error
func (h *harness) run(clocks int) {
	h.t.Helper()
	for i := 0; i < clocks; i++ {
		_, err := h.step()
		test.DemandSuccess(h.t, err)
	}
}

// clocks for the next instruction to retire. the first two instructions
// after a reset are the NOPs in the pipeline
func (h *harness) instruction() int {
	h.t.Helper()
	retired := h.mc.Retired()
	clocks := 0
	for h.mc.Retired() == retired {
		_, err := h.step()
		test.DemandSuccess(h.t, err)
		clocks++
		if clocks > 100 {
			h.t.Fatalf("instruction has not retired after %d clocks", clocks)
		}
	}
	return clocks
}

// skip the NOPs that fill the pipeline after a reset
func (h *harness) skipReset() {
	h.t.Helper()
	h.instruction()
	h.instruction()
}

func (h *harness) reg(n int) uint32 {
	return h.mc.Registers().Get(n, 0)
}

// thumb packs two thumb instructions into a word. the first instruction is
// at the lower address
func thumb(lo, hi uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}
