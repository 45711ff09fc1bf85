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

// Package paths contains functions to prepare paths to VidShim resources.
//
// The ResourcePath() function returns the path to a resource in the
// appropriate config directory, creating the sub-directory if necessary. For
// example, the following will return the path to the preferences file:
//
//	pth, err := paths.ResourcePath("", paths.PrefsFile)
//
// Development builds use the ".vidshim" directory in the current directory.
// Release builds, built with the "release" tag, use the user's config
// directory as returned by os.UserConfigDir(). On a modern Linux system:
//
//	/home/user/.config/vidshim/preferences
package paths
