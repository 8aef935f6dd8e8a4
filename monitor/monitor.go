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

package monitor

import (
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/arm7tdmi/hardware"
	"github.com/jetsetilly/arm7tdmi/logger"
)

// RunClocks is the number of clocks run by the 'r' key.
const RunClocks = 1000

// Monitor steps a machine in response to key presses.
type Monitor struct {
	m      *hardware.Machine
	output io.Writer

	// print the most recent log entries after every command
	logTail int
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(m *hardware.Machine, output io.Writer) *Monitor {
	return &Monitor{
		m:      m,
		output: output,
	}
}

// ShowLog sets the number of log entries printed after each command. Zero
// disables the log.
func (mon *Monitor) ShowLog(n int) {
	mon.logTail = n
}

// Run reads keys from input until the quit key is pressed or input is
// exhausted. Machine errors are printed and do not end the monitor.
func (mon *Monitor) Run(input io.Reader) error {
	mon.help()
	mon.state()

	b := make([]byte, 1)
	for {
		_, err := input.Read(b)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("monitor: %w", err)
		}

		quit, err := mon.key(b[0])
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(mon.output, "* %v\n", err)
			continue
		}
		mon.state()
	}
}

// perform the command for the key. returns true if the monitor should quit
func (mon *Monitor) key(k byte) (bool, error) {
	switch k {
	case ' ':
		clocks, err := mon.m.StepInstruction()
		fmt.Fprintf(mon.output, "%d clocks\n", clocks)
		return false, err
	case 'c', 'C':
		return false, mon.m.Step()
	case 'r', 'R':
		return false, mon.m.RunFor(RunClocks)
	case 'q', 'Q':
		return true, nil
	}
	mon.help()
	return false, nil
}

func (mon *Monitor) help() {
	fmt.Fprintln(mon.output, "[space] instruction  [c] clock  [r] run 1000 clocks  [q] quit")
}

// print the state of the machine
func (mon *Monitor) state() {
	opcode, step := mon.m.CPU.Executing()
	fmt.Fprintf(mon.output, "%08x: %08x (step %d)\n", mon.m.CPU.InstructionAddress(), opcode, step)
	fmt.Fprintln(mon.output, mon.m.CPU.Registers())
	fmt.Fprintln(mon.output, mon.m.Stats())
	if mon.logTail > 0 {
		logger.Tail(mon.output, mon.logTail)
	}
}
