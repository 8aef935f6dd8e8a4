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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/arm7tdmi/hardware/bus"
)

// Stats are the cycle statistics for the machine.
type Stats struct {
	Clocks uint64

	// the number of clocks of each bus cycle type
	N uint64
	S uint64
	I uint64
	C uint64

	// the number of clocks the memory asked the CPU to wait
	Waits uint64

	// instructions retired by the CPU
	Retired uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("clocks: %d (N: %d, S: %d, I: %d, C: %d, wait: %d) retired: %d",
		s.Clocks, s.N, s.S, s.I, s.C, s.Waits, s.Retired)
}

// CPI returns the average number of clocks per retired instruction.
func (s Stats) CPI() float64 {
	if s.Retired == 0 {
		return 0
	}
	return float64(s.Clocks) / float64(s.Retired)
}

func (s *Stats) tally(req bus.Request, resp bus.Response, retired uint64) {
	s.Clocks++
	switch req.Cycle {
	case bus.N:
		s.N++
	case bus.S:
		s.S++
	case bus.I:
		s.I++
	case bus.C:
		s.C++
	}
	if resp.Wait {
		s.Waits++
	}
	s.Retired = retired
}
