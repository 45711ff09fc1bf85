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

package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/logger"
	"github.com/vidshim/vidshim/paths"
	"golang.org/x/image/draw"
)

// SaveError is the pattern used for all errors returned by the Writer.
const SaveError = "screenshot: %v"

// Writer implements the blitter.Screenshotter interface.
type Writer struct {
	// the directory to save screenshots to. the current directory is used if
	// the function returns the empty string
	dir func() string

	// number of screenshots started. used in the filename
	count atomic.Int64

	// number of screenshots successfully written
	Saved atomic.Int64

	// the path of the most recently saved screenshot
	last atomic.Pointer[string]

	wg sync.WaitGroup
}

// NewWriter is the preferred method of initialisation for the Writer type.
// The dir function is called for every screenshot so that changes to the
// preferences take effect immediately.
func NewWriter(dir func() string) *Writer {
	if dir == nil {
		dir = func() string { return "" }
	}
	return &Writer{dir: dir}
}

// Save the pixels as a PNG file. The size argument is the size the frame
// should be displayed at. If it differs from the width and height of the
// frame then the image is scaled.
func (wr *Writer) Save(pix []byte, w, h, stride int, size image.Point, session string) {
	if w <= 0 || h <= 0 {
		return
	}

	// the pixels must be copied now because the slot will be reused
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], pix[y*stride:])
	}

	n := wr.count.Add(1)
	name := fmt.Sprintf("%s_%d.png", paths.UniqueFilename("vidshim", session), n)
	path := filepath.Join(wr.dir(), name)

	wr.wg.Add(1)
	go func() {
		defer wr.wg.Done()

		err := encode(path, scale(img, size))
		if err != nil {
			logger.Log(logger.Allow, "screenshot", err)
			return
		}

		wr.Saved.Add(1)
		wr.last.Store(&path)
		logger.Logf(logger.Allow, "screenshot", "saved: %s", path)
	}()
}

// Wait for all screenshots in progress to complete.
func (wr *Writer) Wait() {
	wr.wg.Wait()
}

// Last returns the path of the most recently saved screenshot. Returns the
// empty string if no screenshot has been saved.
func (wr *Writer) Last() string {
	if p := wr.last.Load(); p != nil {
		return *p
	}
	return ""
}

// scale the image to the requested size. the image is returned unchanged if
// the size is the same or invalid
func scale(img *image.RGBA, size image.Point) *image.RGBA {
	b := img.Bounds()
	if size.X <= 0 || size.Y <= 0 || size == b.Size() {
		return img
	}

	var scaler draw.Scaler = draw.CatmullRom
	if size.X%b.Dx() == 0 && size.Y%b.Dy() == 0 {
		scaler = draw.NearestNeighbor
	}

	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func encode(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return curated.Errorf(SaveError, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	err = png.Encode(f, img)
	if err != nil {
		_ = f.Close()
		return curated.Errorf(SaveError, err)
	}

	err = f.Close()
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	return nil
}
