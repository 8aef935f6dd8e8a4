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

// Package prefs provides typed preference values and a way of setting those
// values from the command line.
//
// Preference values are of type Bool, Int, String or Address. Every type can
// have a hook function that is called before and after the value changes. The
// pre hook can reject the new value by returning an error.
//
// Values are collected into a Registry under a key name. Keys are by
// convention dot separated, for example "cpu.resetVector".
//
// A command line group is a string of key/value pairs of the form:
//
//	key::value; key::value
//
// Groups are pushed onto a stack with PushCommandLineStack(). When the values
// in a Registry are applied with Apply(), the most recent group is consulted
// and any matching keys set the preference value. Keys that are used are
// removed from the group so that the unused values can be reported by
// PopCommandLineStack().
package prefs
