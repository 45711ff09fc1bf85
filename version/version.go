// This file is part of VidShim.
//
// VidShim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VidShim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VidShim.  If not, see <https://www.gnu.org/licenses/>.

package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application. It
// is used in the window title
const ApplicationName = "VidShim"

// set by the linker for release builds:
//
//	go build -ldflags "-X github.com/vidshim/vidshim/version.number=v0.1.0"
var number string

var (
	version   string
	revision  string
	goVersion string
)

// the length of a shortened vcs revision
const shortRevision = 12

func init() {
	version, revision, goVersion = fromBuildInfo(number, debug.ReadBuildInfo)
}

// fromBuildInfo returns the version, revision and Go version strings. The
// version is "unreleased" if there is vcs information but no version number
// and "local" if there is neither.
func fromBuildInfo(number string, read func() (*debug.BuildInfo, bool)) (string, string, string) {
	var vcs bool
	var rev string
	var modified bool
	var gov string

	if info, ok := read(); ok {
		gov = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if rev == "" {
		rev = "no revision information"
	} else {
		if len(rev) > shortRevision {
			rev = rev[:shortRevision]
		}
		if modified {
			rev = fmt.Sprintf("%s+dirty", rev)
		}
	}

	ver := number
	if ver == "" {
		if vcs {
			ver = "unreleased"
		} else {
			ver = "local"
		}
	}

	return ver, rev, gov
}

// Version returns the version string, the revision string and whether this
// is a numbered release.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// GoVersion returns the version of Go used to build the program.
func GoVersion() string {
	return goVersion
}

// Title returns the string to use as the base of the window title.
func Title() string {
	if number != "" {
		return fmt.Sprintf("%s %s", ApplicationName, version)
	}
	return ApplicationName
}
