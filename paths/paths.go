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

package paths

import (
	"path/filepath"
)

// PrefsFile is the name of the file preferences are stored in.
const PrefsFile = "preferences"

// ScreenshotDir is the sub-directory that screenshots are saved to if the
// screenshot directory has not been set in the preferences.
const ScreenshotDir = "screenshots"

// ResourcePath returns the path to the resource in the config directory. The
// sub-path is created if it does not exist. The file is not checked.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}
