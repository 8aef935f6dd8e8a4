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

package preferences_test

import (
	"testing"

	"github.com/jetsetilly/arm7tdmi/hardware/cpu"
	"github.com/jetsetilly/arm7tdmi/hardware/preferences"
	"github.com/jetsetilly/arm7tdmi/prefs"
	"github.com/jetsetilly/arm7tdmi/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.ResetVector.Get(), prefs.Value(uint32(cpu.DefaultResetVector)))
	test.ExpectEquality(t, p.HaltOnUndefined.Get(), prefs.Value(false))
	test.ExpectEquality(t, p.WaitStates.Get(), prefs.Value(0))
	test.ExpectEquality(t, p.ROMOrigin.String(), "0x08000000")
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("memory.waitStates::3; cpu.haltOnUndefined::true; unknown::1")
	p, err := preferences.NewPreferences()
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "unknown::1")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.WaitStates.Get(), prefs.Value(3))
	test.ExpectEquality(t, p.HaltOnUndefined.Get(), prefs.Value(true))

	p.SetDefaults()
	test.ExpectEquality(t, p.WaitStates.Get(), prefs.Value(0))
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Set("memory.waitStates", -1))
	test.ExpectFailure(t, p.Set("memory.ramOrigin", "0x101"))
	test.ExpectFailure(t, p.Set("memory.missing", 1))
	test.ExpectSuccess(t, p.Set("memory.ramOrigin", "0x100"))
	test.ExpectEquality(t, p.RAMOrigin.String(), "0x00000100")

	// failed values are not stored
	test.ExpectEquality(t, p.WaitStates.Get(), prefs.Value(0))
}
