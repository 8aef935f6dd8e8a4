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

package hardware

import (
	"fmt"
	"io"

	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu"
	"github.com/jetsetilly/arm7tdmi/hardware/cpu/instructions"
	"github.com/jetsetilly/arm7tdmi/hardware/memory"
	"github.com/jetsetilly/arm7tdmi/hardware/preferences"
	"github.com/jetsetilly/arm7tdmi/logger"
	"github.com/jetsetilly/arm7tdmi/prefs"
)

// MachineError is the pattern for errors that halt the machine.
const MachineError = "machine: %v"

// Machine is the root of the emulation.
type Machine struct {
	CPU   *cpu.CPU
	Mem   *memory.Memory
	Prefs *preferences.Preferences

	// services the requests made by the CPU. normally the memory but it can
	// be replaced by a collaborator that wraps the memory
	collaborator bus.Collaborator

	// the response to the most recent request. delivered to the CPU on the
	// next clock
	resp bus.Response

	stats Stats

	// the memory map as it was last successfully applied
	mapped memoryMap
}

// the geometry of the rom and ram areas
type memoryMap struct {
	romOrigin uint32
	romSize   uint32
	ramOrigin uint32
	ramSize   uint32
}

func (m *Machine) preferredMap() memoryMap {
	return memoryMap{
		romOrigin: m.Prefs.ROMOrigin.Get().(uint32),
		romSize:   m.Prefs.ROMSize.Get().(uint32),
		ramOrigin: m.Prefs.RAMOrigin.Get().(uint32),
		ramSize:   m.Prefs.RAMSize.Get().(uint32),
	}
}

// remap the rom and ram areas to match the preferences. if the new map is
// invalid the memory is unchanged and the preference is set back to the
// previous value
func (m *Machine) remap(pref *prefs.Address, previous uint32) error {
	mm := m.preferredMap()
	if mm == m.mapped {
		return nil
	}

	err := m.Mem.Remap("rom", mm.romOrigin, mm.romSize)
	if err == nil {
		err = m.Mem.Remap("ram", mm.ramOrigin, mm.ramSize)
		if err != nil {
			// put the rom back where it was. this can't fail because the
			// previous map was valid
			_ = m.Mem.Remap("rom", m.mapped.romOrigin, m.mapped.romSize)
		}
	}
	if err != nil {
		_ = pref.Set(previous)
		return curated.Errorf(MachineError, err)
	}

	m.mapped = mm
	logger.Logf(logger.Allow, "machine", "memory remapped\n%s", m.Mem)

	return nil
}

// the post hook for one of the memory map preferences
func (m *Machine) remapHook(pref *prefs.Address, previous func() uint32) func(prefs.Value) error {
	return func(_ prefs.Value) error {
		return m.remap(pref, previous())
	}
}

// NewMachine creates a new Machine with memory configured according to the
// preferences. If prefs is nil then default preferences are used.
func NewMachine(p *preferences.Preferences) (*Machine, error) {
	if p == nil {
		var err error
		p, err = preferences.NewPreferences()
		if err != nil {
			return nil, curated.Errorf(MachineError, err)
		}
	}

	m := &Machine{
		Prefs: p,
		Mem:   memory.NewMemory(),
	}
	m.collaborator = m.Mem

	m.mapped = m.preferredMap()
	err := m.Mem.AddArea("rom", m.mapped.romOrigin, m.mapped.romSize, true)
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}
	err = m.Mem.AddArea("ram", m.mapped.ramOrigin, m.mapped.ramSize, false)
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}

	// changes to the memory map take effect immediately. the contents of the
	// areas are kept
	p.ROMOrigin.SetHookPost(m.remapHook(&p.ROMOrigin, func() uint32 { return m.mapped.romOrigin }))
	p.ROMSize.SetHookPost(m.remapHook(&p.ROMSize, func() uint32 { return m.mapped.romSize }))
	p.RAMOrigin.SetHookPost(m.remapHook(&p.RAMOrigin, func() uint32 { return m.mapped.ramOrigin }))
	p.RAMSize.SetHookPost(m.remapHook(&p.RAMSize, func() uint32 { return m.mapped.ramSize }))

	// a change to the reset vector takes effect on the next reset
	m.CPU = cpu.NewCPU(p.ResetVector.Get().(uint32))
	p.ResetVector.SetHookPost(func(v prefs.Value) error {
		m.CPU.SetResetVector(v.(uint32))
		return nil
	})

	// changes to these preferences take effect immediately
	m.CPU.HaltOnUndefined = p.HaltOnUndefined.Get().(bool)
	p.HaltOnUndefined.SetHookPost(func(v prefs.Value) error {
		m.CPU.HaltOnUndefined = v.(bool)
		return nil
	})
	m.Mem.SetWaitStates(p.WaitStates.Get().(int))
	p.WaitStates.SetHookPost(func(v prefs.Value) error {
		m.Mem.SetWaitStates(v.(int))
		return nil
	})

	m.Reset()

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\n%s", m.CPU, m.stats)
}

// Reset the CPU and the memory access state. The contents of memory are
// not changed.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Mem.Reset()
	m.stats = Stats{}

	// the first response delivered to the CPU after a reset
	m.resp = bus.Response{Data: instructions.NOP}

	logger.Logf(logger.Allow, "machine", "reset (vector %08x)", m.CPU.ResetVector())
}

// Load the program image into memory at the reset vector.
func (m *Machine) Load(r io.Reader) error {
	if err := m.Mem.Load(m.Prefs.ResetVector.Get().(uint32), r); err != nil {
		return curated.Errorf(MachineError, err)
	}
	return nil
}

// AttachPeripheral maps a peripheral into the address space.
func (m *Machine) AttachPeripheral(name string, origin uint32, size uint32, p memory.Peripheral) error {
	if err := m.Mem.AddPeripheral(name, origin, size, p); err != nil {
		return curated.Errorf(MachineError, err)
	}
	logger.Logf(logger.Allow, "machine", "attached %s at %08x", name, origin)
	return nil
}

// SetCollaborator replaces the collaborator that services requests made by
// the CPU. A nil collaborator restores the memory as the collaborator.
func (m *Machine) SetCollaborator(c bus.Collaborator) {
	if c == nil {
		c = m.Mem
	}
	m.collaborator = c
}

// Stats returns the cycle statistics since the last reset.
func (m *Machine) Stats() Stats {
	return m.stats
}
