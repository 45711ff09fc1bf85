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

package geometry_test

import (
	"image"
	"testing"

	"github.com/vidshim/vidshim/geometry"
	"github.com/vidshim/vidshim/test"
)

func contained(t *testing.T, vp image.Rectangle, drawable image.Point) {
	t.Helper()
	test.ExpectSuccess(t, vp.In(image.Rect(0, 0, drawable.X, drawable.Y)), vp)

	// centred to within one pixel
	l := vp.Min.X
	r := drawable.X - vp.Max.X
	test.ExpectSuccess(t, r-l == 0 || r-l == 1, vp)
	tp := vp.Min.Y
	b := drawable.Y - vp.Max.Y
	test.ExpectSuccess(t, b-tp == 0 || b-tp == 1, vp)
}

func TestNone(t *testing.T) {
	drawable := image.Pt(1024, 768)
	vp := geometry.Viewport(image.Pt(640, 480), drawable, 1, 1, geometry.StretchNone)
	test.ExpectEquality(t, vp, image.Rect(192, 144, 832, 624))
	contained(t, vp, drawable)
}

func TestFull(t *testing.T) {
	drawable := image.Pt(1280, 960)

	// scale factors that fill the drawable
	xs, ys := geometry.Scale(image.Pt(640, 480), drawable)
	vp := geometry.Viewport(image.Pt(640, 480), drawable, xs, ys, geometry.StretchFull)
	test.ExpectEquality(t, vp, image.Rect(0, 0, 1280, 960))

	// a smaller scale is centred
	vp = geometry.Viewport(image.Pt(640, 480), drawable, 1.5, 1.5, geometry.StretchFull)
	test.ExpectEquality(t, vp, image.Rect(160, 120, 1120, 840))
	contained(t, vp, drawable)

	// rounding of the scaled width
	vp = geometry.Viewport(image.Pt(3, 3), image.Pt(10, 10), 1.5, 1.5, geometry.StretchFull)
	test.ExpectEquality(t, vp.Dx(), 5)

	// a scale that would overflow the drawable is clamped
	vp = geometry.Viewport(image.Pt(640, 480), drawable, 3, 3, geometry.StretchFull)
	test.ExpectEquality(t, vp, image.Rect(0, 0, 1280, 960))

	// no scale factors fill the drawable
	vp = geometry.Viewport(image.Pt(320, 200), drawable, 0, 0, geometry.StretchFull)
	test.ExpectEquality(t, vp, image.Rect(0, 0, 1280, 960))
}

func TestFourThree(t *testing.T) {
	// widescreen drawable
	drawable := image.Pt(1920, 1080)
	vp := geometry.Viewport(image.Pt(320, 200), drawable, 1, 1, geometry.StretchFourThree)
	test.ExpectEquality(t, vp, image.Rect(240, 0, 1680, 1080))
	contained(t, vp, drawable)

	// tall drawable
	drawable = image.Pt(800, 1000)
	vp = geometry.Viewport(image.Pt(320, 200), drawable, 1, 1, geometry.StretchFourThree)
	test.ExpectEquality(t, vp, image.Rect(0, 200, 800, 800))
	contained(t, vp, drawable)
}

func TestKeep(t *testing.T) {
	drawable := image.Pt(1920, 1080)
	vp := geometry.Viewport(image.Pt(720, 400), drawable, 1, 1, geometry.StretchKeep)
	test.ExpectEquality(t, vp, image.Rect(0, 6, 1920, 1073))
	contained(t, vp, drawable)

	// narrower aspect ratio is constrained by the height
	vp = geometry.Viewport(image.Pt(640, 480), drawable, 1, 1, geometry.StretchKeep)
	test.ExpectEquality(t, vp, image.Rect(240, 0, 1680, 1080))
}

func TestInteger(t *testing.T) {
	drawable := image.Pt(1920, 1080)
	vp := geometry.Viewport(image.Pt(640, 480), drawable, 1, 1, geometry.StretchInteger)
	test.ExpectEquality(t, vp, image.Rect(320, 60, 1600, 1020))

	vp = geometry.Viewport(image.Pt(320, 200), drawable, 1, 1, geometry.StretchInteger)
	test.ExpectEquality(t, vp, image.Rect(160, 40, 1760, 1040))
	contained(t, vp, drawable)

	// frame larger than drawable
	vp = geometry.Viewport(image.Pt(2048, 1536), drawable, 1, 1, geometry.StretchInteger)
	test.ExpectEquality(t, vp, image.Rect(240, 0, 1680, 1080))
}

func TestEmpty(t *testing.T) {
	vp := geometry.Viewport(image.Pt(0, 480), image.Pt(640, 480), 1, 1, geometry.StretchFull)
	test.ExpectSuccess(t, vp.Empty())
	vp = geometry.Viewport(image.Pt(640, 480), image.Pt(0, 0), 1, 1, geometry.StretchFull)
	test.ExpectSuccess(t, vp.Empty())
}

func TestParseStretch(t *testing.T) {
	for _, s := range []geometry.Stretch{geometry.StretchNone, geometry.StretchFull,
		geometry.StretchFourThree, geometry.StretchKeep, geometry.StretchInteger} {
		p, err := geometry.ParseStretch(s.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, s)
	}
	_, err := geometry.ParseStretch("wobbly")
	test.ExpectFailure(t, err)
}
