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

package modalflag

import (
	"flag"
	"fmt"
	"strings"
)

// help prints the flags and sub-modes of the current mode
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	s := strings.Builder{}

	var flags int
	md.flags.VisitAll(func(f *flag.Flag) {
		flags++
		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			s.WriteString(fmt.Sprintf("  -%s %s\n", f.Name, name))
		} else {
			s.WriteString(fmt.Sprintf("  -%s\n", f.Name))
		}
		s.WriteString(fmt.Sprintf("    \t%s", usage))
		switch f.DefValue {
		case "", "0", "false":
		default:
			// Func flags have an empty default value. for other types the
			// default is printed if it is not the zero value
			s.WriteString(fmt.Sprintf(" (default %s)", f.DefValue))
		}
		s.WriteString("\n")
	})

	if len(md.subModes) > 0 {
		if flags > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("  available sub-modes: %s\n", strings.Join(md.subModes, ", ")))
		s.WriteString(fmt.Sprintf("    default: %s\n", md.subModes[0]))
	}

	if s.Len() == 0 {
		if md.Path() != "" {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.Path())
		} else {
			fmt.Fprintln(md.Output, "No help available")
		}
		return
	}

	if md.Path() != "" {
		fmt.Fprintf(md.Output, "Usage for %s mode:\n", md.Path())
	} else {
		fmt.Fprintln(md.Output, "Usage:")
	}
	fmt.Fprint(md.Output, s.String())

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}
