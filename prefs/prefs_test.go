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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/prefs"
	"github.com/vidshim/vidshim/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vidshim_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	// bool cannot be set from an int
	test.ExpectFailure(t, v.Set(1))
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// test string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// failure conditions
	err = v.Set("---")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.IsAny(err))

	err = v.Set(1.0)
	test.ExpectFailure(t, err)
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectSuccess(t, v.Set("59.94"))
	test.ExpectEquality(t, v.Get().(float64), 59.94)
	test.ExpectEquality(t, v.String(), "59.940")
	test.ExpectSuccess(t, v.Set(60))
	test.ExpectEquality(t, v.Get().(float64), 60.0)
	test.ExpectFailure(t, v.Set("sixty"))
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)

	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 1
	h = 2

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "generic :: 1,2\n")

	w = 0
	h = 0

	// reload them from disk
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, h, 2)
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	// start a new disk instance using the same file
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpTmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// unsetting a maximum length will not result in cropped information
	// reappearing
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestHooks(t *testing.T) {
	var v prefs.Bool
	var post []bool

	v.SetHookPre(func(value prefs.Value) error {
		if value.(bool) {
			return nil
		}
		return fmt.Errorf("refused")
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = append(post, value.(bool))
		return nil
	})

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectFailure(t, v.Set(false))

	// value was not changed by the refused set
	test.ExpectEquality(t, v.Get().(bool), true)
	test.DemandEquality(t, len(post), 1)
	test.ExpectEquality(t, post[0], true)
}

func TestLoad(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var backend prefs.String
	var vsync prefs.Bool
	test.ExpectSuccess(t, dsk.Add("display.backend", &backend))
	test.ExpectSuccess(t, dsk.Add("display.vsync", &vsync))

	// no file yet
	err = dsk.Load(false)
	test.ExpectSuccess(t, err)
	_, err = os.Stat(fn)
	test.ExpectFailure(t, err)

	// file is created when saveOnFail is true
	test.ExpectSuccess(t, backend.Set("software"))
	test.ExpectSuccess(t, dsk.Load(true))
	cmpTmpFile(t, fn, "display.backend :: software\ndisplay.vsync :: false\n")

	// the command line takes precedence over the file
	test.ExpectSuccess(t, backend.Set("hardware"))
	prefs.PushCommandLineStack("display.vsync::true")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, backend.String(), "software")
	test.ExpectEquality(t, vsync.Get().(bool), true)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// defunct keys are dropped on save
	test.DemandSuccess(t, os.WriteFile(fn, []byte(prefs.WarningBoilerPlate+"\ndisplay.pbo :: true\nother :: 1\n"), 0o600))
	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "display.backend :: software\ndisplay.vsync :: true\nother :: 1\n")
}

func TestNotAPrefsFile(t *testing.T) {
	fn := tmpPrefFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hello\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.DiskError))

	test.ExpectFailure(t, dsk.Add("bad :: key", &v))
}
