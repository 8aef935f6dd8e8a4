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

// Package instructions classifies ARM and Thumb instruction words. The
// classification is done by a priority ordered list of bit masks. The first
// match decides the class.
//
// Most Thumb instructions have an exact equivalent in the ARM instruction set.
// ThumbToARM() translates those instructions so that they can be executed by
// the same state machine as ARM instructions. The conditional branch, the
// unconditional branch and the two halves of the long branch with link have
// no ARM equivalent and are executed natively.
package instructions
