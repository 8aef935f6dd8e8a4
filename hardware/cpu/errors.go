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

package cpu

// Sentinel error patterns. Any of these errors returned by Step() halt the
// CPU. The CPU must be Reset() before it will continue.
const (
	UnimplementedInstruction = "cpu: unimplemented instruction (%08x) at %08x"
	UndefinedInstruction     = "cpu: undefined instruction (%08x) at %08x"
	ForbiddenOperand         = "cpu: %s: forbidden operand: %s"
	UndefinedStep            = "cpu: %s: undefined step (%d)"
	StatusRegister           = "cpu: %s: %v"
	EmptyPipeline            = "cpu: prefetch queue is empty"
)
