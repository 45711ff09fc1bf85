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

package nullvideo_test

import (
	"image"
	"testing"

	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/test"
)

func TestNullBackend(t *testing.T) {
	b := nullvideo.NewBackend(0, 0)
	test.DemandImplements[display.Backend](t, b)
	test.ExpectEquality(t, b.Kind(), display.Null)
	test.ExpectSuccess(t, b.Init())

	w, h := b.DrawableSize()
	test.ExpectEquality(t, w, nullvideo.DefaultWidth)
	test.ExpectEquality(t, h, nullvideo.DefaultHeight)

	b.Resize(800, 600)
	w, h = b.DrawableSize()
	test.ExpectEquality(t, w, 800)
	test.ExpectEquality(t, h, 600)

	test.ExpectSuccess(t, b.ResizeTexture(320, 200))
	w, h = b.TextureSize()
	test.ExpectEquality(t, w, 320)
	test.ExpectEquality(t, h, 200)

	test.ExpectSuccess(t, b.Present(nil, image.Rect(0, 0, 800, 600)))
	test.ExpectEquality(t, b.Presents.Load(), int64(1))

	// reinit forgets the texture size
	test.ExpectSuccess(t, b.Reinit())
	w, _ = b.TextureSize()
	test.ExpectEquality(t, w, 0)
}
