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

// Package logger is the central log for the emulation. Entries are made up
// of a tag (normally the name of the component making the entry) and a detail
// string. Adjacent identical entries are collapsed into one entry with a
// repeat count.
//
// Logging is gated by the Permission interface. Components that may or may
// not want to log depending on their context (for example, a CPU being driven
// by a test) pass a Permission implementation. The Allow value can be used
// when logging should always happen.
package logger
