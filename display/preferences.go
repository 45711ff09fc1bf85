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

package display

import (
	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/geometry"
	"github.com/vidshim/vidshim/paths"
	"github.com/vidshim/vidshim/prefs"
)

// Preferences for the display backends.
type Preferences struct {
	dsk *prefs.Disk

	Backend    prefs.String
	VSync      prefs.Bool
	Filter     prefs.String
	Shader     prefs.String
	Stretch    prefs.String
	FullScreen prefs.Bool
	OSD        prefs.Bool

	ScreenshotDir prefs.String
}

const (
	backend       = "software"
	vsync         = true
	filter        = "nearest"
	shader        = ""
	stretch       = "full"
	fullScreen    = false
	osd           = false
	screenshotDir = ""
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The path is the location of the preferences file. If path
// is empty then the default location is used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		var err error
		path, err = paths.ResourcePath("", paths.PrefsFile)
		if err != nil {
			return nil, curated.Errorf("display: preferences: %v", err)
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, curated.Errorf("display: preferences: %v", err)
	}

	p.Filter.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case "nearest", "linear":
			return nil
		}
		return curated.Errorf("display: preferences: unknown filter (%v)", v)
	})

	p.Stretch.SetHookPre(func(v prefs.Value) error {
		_, err := geometry.ParseStretch(v.(string))
		if err != nil {
			return curated.Errorf("display: preferences: %v", err)
		}
		return nil
	})

	p.Backend.SetHookPre(func(v prefs.Value) error {
		_, err := ParseKind(v.(string))
		if err != nil {
			return curated.Errorf("display: preferences: %v", err)
		}
		return nil
	})

	err = p.dsk.Add("display.backend", &p.Backend)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.vsync", &p.VSync)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.filter", &p.Filter)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.shader", &p.Shader)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.stretch", &p.Stretch)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.fullscreen", &p.FullScreen)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.osd", &p.OSD)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("screenshot.dir", &p.ScreenshotDir)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to default values.
func (p *Preferences) SetDefaults() {
	p.Backend.Set(backend)
	p.VSync.Set(vsync)
	p.Filter.Set(filter)
	p.Shader.Set(shader)
	p.Stretch.Set(stretch)
	p.FullScreen.Set(fullScreen)
	p.OSD.Set(osd)
	p.ScreenshotDir.Set(screenshotDir)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Kind returns the backend preference as a Kind value.
func (p *Preferences) Kind() Kind {
	k, _ := ParseKind(p.Backend.String())
	return k
}

// StretchMode returns the stretch preference as a geometry.Stretch value.
func (p *Preferences) StretchMode() geometry.Stretch {
	s, _ := geometry.ParseStretch(p.Stretch.String())
	return s
}

// LinearFilter returns true if the filter preference is "linear".
func (p *Preferences) LinearFilter() bool {
	return p.Filter.String() == "linear"
}
