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

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/test"
)

// an endless loop incrementing r0
var counter = []uint32{
	0xe3a00000, // mov r0, #0
	0xe2800001, // loop: add r0, r0, #1
	0xeafffffd, // b loop
}

func image(words []uint32) []byte {
	b := &bytes.Buffer{}
	for _, w := range words {
		_ = binary.Write(b, binary.LittleEndian, w)
	}
	return b.Bytes()
}

func writeImage(t *testing.T) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "counter.bin")
	test.DemandSuccess(t, os.WriteFile(fn, image(counter), 0o644))
	return fn
}

func TestLaunch(t *testing.T) {
	fn := writeImage(t)

	test.ExpectEquality(t, launch([]string{"version"}), 0)
	test.ExpectEquality(t, launch([]string{"-undefined"}), 20)
	test.ExpectEquality(t, launch([]string{"run", "-cycles", "500", fn}), 0)
	test.ExpectEquality(t, launch([]string{"run", "-cycles", "500", "-prefs", "memory.waitStates::2", fn}), 0)
	test.ExpectEquality(t, launch([]string{"-cycles", "500", fn}), 0)
	test.ExpectEquality(t, launch([]string{"run", "-cycles", "500", "-digest", fn}), 0)

	// missing image and too many arguments
	test.ExpectEquality(t, launch([]string{"run"}), 20)
	test.ExpectEquality(t, launch([]string{"run", fn, fn}), 20)
	test.ExpectEquality(t, launch([]string{"run", filepath.Join(t.TempDir(), "missing.bin")}), 20)

	// invalid preference value
	test.ExpectEquality(t, launch([]string{"run", "-prefs", "memory.waitStates::-1", fn}), 20)
}

func TestMemviz(t *testing.T) {
	fn := writeImage(t)
	out := filepath.Join(t.TempDir(), "cpu.dot")

	test.ExpectEquality(t, launch([]string{"run", "-cycles", "100", "-memviz", out, fn}), 0)

	b, err := os.ReadFile(out)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Contains(b, []byte("digraph")))
}

func TestScript(t *testing.T) {
	fn := writeImage(t)
	script := filepath.Join(t.TempDir(), "port.lua")
	test.DemandSuccess(t, os.WriteFile(script, []byte(`
function read(address)
	return 0
end

function write(address, value, size)
end
`), 0o644))

	test.ExpectEquality(t, launch([]string{"run", "-cycles", "100", "-script", script, fn}), 0)

	// the scripted peripheral cannot overlap RAM
	test.ExpectEquality(t, launch([]string{"run", "-cycles", "100", "-script", script, "-scriptorigin", "0x100", fn}), 20)
}

func BenchmarkMachine(b *testing.B) {
	m, err := hardware.NewMachine(nil)
	if err != nil {
		b.Fatal(err)
	}
	if err := m.Load(bytes.NewReader(image(counter))); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
