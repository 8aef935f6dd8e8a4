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
	"github.com/jetsetilly/arm7tdmi/curated"
	"github.com/jetsetilly/arm7tdmi/hardware/bus"
)

// Step the emulation one clock. The response to the previous request is
// delivered to the CPU and the new request is passed to memory.
func (m *Machine) Step() error {
	req, err := m.CPU.Step(m.resp)
	if err != nil {
		return curated.Errorf(MachineError, err)
	}

	m.resp = m.collaborator.Access(req)
	m.stats.tally(req, m.resp, m.CPU.Retired())

	return nil
}

// StepInstruction steps the emulation until the current instruction has been
// retired. Returns the number of clocks taken.
func (m *Machine) StepInstruction() (int, error) {
	retired := m.CPU.Retired()
	var clocks int
	for m.CPU.Retired() == retired {
		if err := m.Step(); err != nil {
			return clocks, err
		}
		clocks++
	}
	return clocks, nil
}

// Response returns the response to the most recent request. It will be
// delivered to the CPU on the next call to Step().
func (m *Machine) Response() bus.Response {
	return m.resp
}

// PerformanceBrake is the number of clocks between calls to the
// continueCheck() function in Run() and RunLimit().
const PerformanceBrake = 100

// Run the emulation until the continueCheck() function returns false or an
// error. The continueCheck() function is called every PerformanceBrake
// clocks, so the emulation can run for up to PerformanceBrake clocks after
// the condition it checks has become true. A nil continueCheck() function will
// cause the emulation to run until the CPU halts.
//
// Use RunLimit() when the emulation must stop after an exact number of clocks.
func (m *Machine) Run(continueCheck func() (bool, error)) error {
	return m.RunLimit(0, continueCheck)
}

// RunLimit is the same as Run() except that the emulation will stop after
// exactly limit clocks, if it hasn't been stopped before then. A limit of zero
// means there is no limit.
func (m *Machine) RunLimit(limit uint64, continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	var clocks uint64

	for {
		n := uint64(PerformanceBrake)
		if limit > 0 && limit-clocks < n {
			n = limit - clocks
		}

		for i := uint64(0); i < n; i++ {
			if err := m.Step(); err != nil {
				return err
			}
		}
		clocks += n

		if limit > 0 && clocks >= limit {
			return nil
		}

		cont, err := continueCheck()
		if err != nil {
			return curated.Errorf(MachineError, err)
		}
		if !cont {
			return nil
		}
	}
}

// RunFor runs the emulation for the specified number of clocks.
func (m *Machine) RunFor(clocks uint64) error {
	for i := uint64(0); i < clocks; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
