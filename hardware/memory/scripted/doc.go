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

// Package scripted implements a memory.Peripheral with the behaviour of the
// peripheral defined by a Lua script.
//
// The script must define two global functions:
//
//	function read(address)
//		return value
//	end
//
//	function write(address, value, size)
//	end
//
// The address given to read() is word aligned and the function should return
// the word at that address. The value given to write() has been shifted down
// from its lane on the data bus and masked to the size of the transfer. The
// size is the width of the transfer in bytes.
//
// Two functions are provided for the script. log(string) adds an entry to the
// central log and emit(string) writes to the output of the peripheral. For
// example, a simple output port:
//
//	function write(address, value, size)
//		emit(string.char(value))
//	end
//
//	function read(address)
//		return 0
//	end
package scripted
