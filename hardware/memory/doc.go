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

// Package memory implements a bus.Collaborator made up of a list of memory
// areas. An area is either RAM/ROM backed by a little-endian byte slice or is
// delegated to a Peripheral.
//
// Reads always return the word aligned container for the requested address.
// It is the responsibility of the CPU to select the correct byte or halfword.
// Writes change only the bytes selected by the size of the transfer and the
// low bits of the address.
//
// Accesses to unmapped addresses, and writes to read-only areas, are memory
// faults. Faults are logged and counted but otherwise ignored. An unmapped
// read returns zero.
package memory
