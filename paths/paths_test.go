//go:build !release

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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vidshim/vidshim/paths"
	"github.com/vidshim/vidshim/test"
)

func TestPaths(t *testing.T) {
	// config directory is created relative to the current directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".vidshim", "foo", "bar", "baz"))

	// sub-directory has been created
	info, err := os.Stat(filepath.Join(".vidshim", "foo", "bar"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	pth, err = paths.ResourcePath("", paths.PrefsFile)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".vidshim", "preferences"))
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2026, time.March, 7, 9, 5, 1, 0, time.UTC)
	test.ExpectEquality(t, paths.UniqueFilenameAt("vidshim", "abcd", n), "vidshim_abcd_20260307_090501")
	test.ExpectEquality(t, paths.UniqueFilenameAt("vidshim", "  ", n), "vidshim_20260307_090501")
}
