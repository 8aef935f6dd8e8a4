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

// Package version reports the version of the application. Version information
// comes from the linker (the number variable) and from the build information
// embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "arm7tdmi"

// set by the linker with -X. empty if the project was not built by the
// release process
var number string

// Info is the version information for the running binary.
type Info struct {
	// the version number. "unreleased" if there is vcs information but no
	// version number. "local" if there is neither
	Version string

	// the vcs revision, suffixed with "+dirty" if the source had uncommitted
	// changes
	Revision string

	// version of the Go toolchain used to build the binary
	GoVersion string

	// true if this is a numbered release
	Release bool
}

func (i Info) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s %s", ApplicationName, i.Version)
	if !i.Release {
		fmt.Fprintf(&s, " (%s)", i.Revision)
	}
	if i.GoVersion != "" {
		fmt.Fprintf(&s, "\nbuilt with %s", i.GoVersion)
	}
	return s.String()
}

var info Info

// Version returns the version information for the running binary.
func Version() Info {
	return info
}

func init() {
	info = fromBuildInfo(number, debug.ReadBuildInfo)
}

func fromBuildInfo(number string, read func() (*debug.BuildInfo, bool)) Info {
	var i Info
	var vcs bool
	var modified bool

	if bi, ok := read(); ok {
		i.GoVersion = bi.GoVersion
		for _, v := range bi.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				i.Revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	switch {
	case i.Revision == "":
		i.Revision = "no revision information"
	case modified:
		i.Revision = fmt.Sprintf("%s+dirty", i.Revision)
	}

	switch {
	case number != "":
		i.Version = number
		i.Release = true
	case vcs:
		i.Version = "unreleased"
	default:
		i.Version = "local"
	}

	return i
}
