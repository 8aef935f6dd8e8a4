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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different flags
// for each mode.
//
// Arguments are given to NewArgs() and then parsed with Parse(). Flags for the
// current mode are added before the call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "STEP", "VERSION")
//	verbose := md.AddBool("log", false, "echo log to stdout")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first non-flag argument is compared with the list of sub-modes. If it
// matches, the mode is selected and the argument is consumed. Otherwise the
// first sub-mode in the list is the selected mode. Comparisons are case
// insensitive and the Mode() function always returns an upper case string.
//
// Flags for the selected mode are handled by calling NewMode() and then
// repeating the process. The modes that have been selected are recorded and
// returned by Path().
package modalflag
