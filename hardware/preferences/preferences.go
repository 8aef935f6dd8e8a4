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

// Package preferences collates the preference values used by the hardware
// package. Values can be set on the command line with the prefs stack. See
// the prefs package.
package preferences

import (
	"fmt"

	"github.com/jetsetilly/arm7tdmi/hardware/cpu"
	"github.com/jetsetilly/arm7tdmi/prefs"
)

// Preferences for the emulated hardware.
type Preferences struct {
	reg *prefs.Registry

	// address of the first instruction fetch after a reset
	ResetVector prefs.Address

	// an undefined instruction halts the CPU with an error rather than taking
	// the undefined instruction exception
	HaltOnUndefined prefs.Bool

	// number of cycles each non-sequential memory access waits
	WaitStates prefs.Int

	// location and size of the two memory areas. the ROM area is read-only
	// once the program image has been loaded
	ROMOrigin prefs.Address
	ROMSize   prefs.Address
	RAMOrigin prefs.Address
	RAMSize   prefs.Address
}

func (p *Preferences) String() string {
	return p.reg.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values from the most recent command line group are applied.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		reg: prefs.NewRegistry(),
	}

	p.WaitStates.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("wait states cannot be negative")
		}
		return nil
	})

	aligned := func(v prefs.Value) error {
		if v.(uint32)&0x03 != 0 {
			return fmt.Errorf("value must be word aligned (%08x)", v)
		}
		return nil
	}
	p.ROMOrigin.SetHookPre(aligned)
	p.ROMSize.SetHookPre(aligned)
	p.RAMOrigin.SetHookPre(aligned)
	p.RAMSize.SetHookPre(aligned)

	p.SetDefaults()

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{key: "cpu.resetVector", p: &p.ResetVector},
		{key: "cpu.haltOnUndefined", p: &p.HaltOnUndefined},
		{key: "memory.waitStates", p: &p.WaitStates},
		{key: "memory.romOrigin", p: &p.ROMOrigin},
		{key: "memory.romSize", p: &p.ROMSize},
		{key: "memory.ramOrigin", p: &p.RAMOrigin},
		{key: "memory.ramSize", p: &p.RAMSize},
	} {
		if err := p.reg.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.reg.Apply(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.ResetVector.Set(uint32(cpu.DefaultResetVector))
	_ = p.HaltOnUndefined.Set(false)
	_ = p.WaitStates.Set(0)
	_ = p.ROMOrigin.Set(uint32(0x08000000))
	_ = p.ROMSize.Set(uint32(0x00100000))
	_ = p.RAMOrigin.Set(uint32(0x00000000))
	_ = p.RAMSize.Set(uint32(0x00040000))
}

// Set the named preference value.
func (p *Preferences) Set(key string, v prefs.Value) error {
	return p.reg.Set(key, v)
}
