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

package monitor_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/monitor"
	"github.com/jetsetilly/arm7tdmi/test"
)

func newMachine(t *testing.T) *hardware.Machine {
	t.Helper()

	m, err := hardware.NewMachine(nil)
	test.DemandSuccess(t, err)

	b := &bytes.Buffer{}
	for _, w := range []uint32{
		0xe3a00005, // mov r0, #5
		0xe2800001, // add r0, r0, #1
		0xeafffffe, // b .
	} {
		_ = binary.Write(b, binary.LittleEndian, w)
	}
	test.DemandSuccess(t, m.Load(b))

	return m
}

func TestKeys(t *testing.T) {
	m := newMachine(t)
	out := &strings.Builder{}
	mon := monitor.NewMonitor(m, out)

	// two instructions prime the pipeline. the third is mov r0, #5
	err := mon.Run(strings.NewReader("   "))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.CPU.Registers().Get(0, 0), 5)
	test.ExpectEquality(t, m.Stats().Clocks, 3)

	err = mon.Run(strings.NewReader("cc"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Stats().Clocks, 5)
	test.ExpectEquality(t, m.CPU.Registers().Get(0, 0), 6)
}

func TestRunAndQuit(t *testing.T) {
	m := newMachine(t)
	out := &strings.Builder{}
	mon := monitor.NewMonitor(m, out)

	// keys after the quit key are never read
	err := mon.Run(strings.NewReader("rqr"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Stats().Clocks, monitor.RunClocks)
}

func TestUnknownKey(t *testing.T) {
	m := newMachine(t)
	out := &strings.Builder{}
	mon := monitor.NewMonitor(m, out)

	err := mon.Run(strings.NewReader("x"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Stats().Clocks, 0)
	test.ExpectEquality(t, strings.Count(out.String(), "[q] quit"), 2)
}
