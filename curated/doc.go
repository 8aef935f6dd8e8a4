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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with Errorf(). It takes a formatting pattern and
// placeholder values like fmt.Errorf() but the pattern is remembered so that
// the error can be identified later with Is() or Has():
//
//	e := curated.Errorf("cpu: unimplemented instruction (%08x)", opcode)
//
//	if curated.Is(e, "cpu: unimplemented instruction (%08x)") {
//		...
//	}
//
// Has() is similar to Is() but checks the whole chain of wrapped curated
// errors. IsAny() returns true if the error was created by Errorf() at all.
//
// The Error() implementation removes duplicate adjacent parts of the message.
// This means that wrapping an error with the same prefix ("cpu: cpu: halted")
// produces a readable message ("cpu: halted").
package curated
