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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/hardware/memory"
	"github.com/jetsetilly/arm7tdmi/hardware/preferences"
	"github.com/jetsetilly/arm7tdmi/test"
)

var loadAndHold = []uint32{
	0xe3a00005, // mov r0, #5
	0xeafffffe, // b .
}

func newMachineWithPrefs(t *testing.T) (*hardware.Machine, *preferences.Preferences) {
	t.Helper()
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(p)
	test.DemandSuccess(t, err)
	return m, p
}

func TestResetVectorPreference(t *testing.T) {
	m, p := newMachineWithPrefs(t)

	test.DemandSuccess(t, p.Set("cpu.resetVector", uint32(0x08001000)))
	test.ExpectEquality(t, m.CPU.ResetVector(), uint32(0x08001000))

	// the image is loaded at the new vector and the reset fetches from there
	test.DemandSuccess(t, m.Load(image(loadAndHold)))
	m.Reset()
	test.ExpectSuccess(t, m.RunFor(20))
	test.ExpectEquality(t, m.CPU.Registers().Get(0, 0), uint32(5))

	v, ok := m.Mem.Peek(0x08001000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint32(0xe3a00005))
}

func TestMemoryMapPreferences(t *testing.T) {
	m, p := newMachineWithPrefs(t)
	test.DemandSuccess(t, m.Load(image(loadAndHold)))

	test.ExpectSuccess(t, p.Set("memory.romOrigin", uint32(0x10000000)))
	test.ExpectEquality(t, m.Mem.String(), "10000000-100fffff rom        rom\n00000000-0003ffff ram        ram")

	// contents move with the area
	v, ok := m.Mem.Peek(0x10000000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint32(0xe3a00005))

	test.ExpectSuccess(t, p.Set("memory.ramSize", uint32(0x00080000)))
	test.ExpectEquality(t, m.Mem.String(), "10000000-100fffff rom        rom\n00000000-0007ffff ram        ram")

	// a map that overlaps is refused and the preference keeps its previous
	// value
	err := p.Set("memory.ramSize", uint32(0x10000004))
	test.ExpectSuccess(t, curated.Is(err, hardware.MachineError))
	test.ExpectSuccess(t, curated.Has(err, memory.OverlapArea))
	test.ExpectEquality(t, p.RAMSize.Get().(uint32), uint32(0x00080000))
	test.ExpectEquality(t, m.Mem.String(), "10000000-100fffff rom        rom\n00000000-0007ffff ram        ram")
}

func TestRunLimit(t *testing.T) {
	m, _ := newMachineWithPrefs(t)
	test.DemandSuccess(t, m.Load(image(summation)))

	// the limit is not a multiple of the performance brake
	test.ExpectSuccess(t, m.RunLimit(250, nil))
	test.ExpectEquality(t, m.Stats().Clocks, uint64(250))

	// the continue check is not called once the limit has been reached
	m.Reset()
	var checks int
	test.ExpectSuccess(t, m.RunLimit(250, func() (bool, error) {
		checks++
		return true, nil
	}))
	test.ExpectEquality(t, m.Stats().Clocks, uint64(250))
	test.ExpectEquality(t, checks, 2)

	// the continue check can stop the emulation before the limit
	m.Reset()
	test.ExpectSuccess(t, m.RunLimit(1000, func() (bool, error) {
		return false, nil
	}))
	test.ExpectEquality(t, m.Stats().Clocks, uint64(hardware.PerformanceBrake))
}
