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
	"fmt"
	"os"

	"github.com/pkg/term"
	xterm "golang.org/x/term"
)

// IsTerminal returns true if the file is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Terminal is a wrapper for "github.com/pkg/term". The terminal is opened in
// cbreak mode so that single key presses can be read without waiting for the
// return key.
type Terminal struct {
	tty *term.Term
}

// the device opened by OpenTerminal()
const device = "/dev/tty"

// OpenTerminal returns a Terminal in cbreak mode. The standard input must be
// connected to a terminal.
func OpenTerminal() (*Terminal, error) {
	if !IsTerminal(os.Stdin) {
		return nil, fmt.Errorf("monitor: stdin is not a terminal")
	}

	tty, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}

	return &Terminal{tty: tty}, nil
}

// Read implements the io.Reader interface.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.tty.Read(p)
}

// Close restores the terminal to the mode it was in before OpenTerminal()
// and closes the device.
func (t *Terminal) Close() error {
	if err := t.tty.Restore(); err != nil {
		_ = t.tty.Close()
		return fmt.Errorf("monitor: %w", err)
	}
	return t.tty.Close()
}
