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

// Package modalflag wraps the flag package in the Go standard library. It
// handles program modes and allows different flags for each mode.
//
// Arguments are given to NewArgs() and Parse() is called without arguments.
// This allows the same argument list to be parsed in layers, one layer for
// each mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TESTCARD", "VERSION")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "TESTCARD":
//		md.NewMode()
//		pattern := md.AddString("pattern", "bars", "test card pattern")
//		size := md.AddSize("size", image.Pt(640, 480), "size of frame")
//		...
//	}
//
// The first sub-mode is the default mode and is selected when the first
// argument after the flags is not a sub-mode. Sub-mode comparisons are case
// insensitive. Arguments that are neither flags nor sub-modes are returned by
// RemainingArgs() and GetArg().
//
// Help is printed to the Output field when the -help flag is given. The Parse()
// function returns ParseHelp in that case.
package modalflag
