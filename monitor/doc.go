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

// Package monitor is a minimal interactive front-end for stepping the
// emulation. Keys are read one at a time from the terminal, which is put into
// cbreak mode for the lifetime of the monitor.
//
// Keys:
//
//	space	step one instruction
//	c	step one clock
//	r	run for RunClocks clocks
//	q	quit
//
// Any other key prints the list of keys.
package monitor
