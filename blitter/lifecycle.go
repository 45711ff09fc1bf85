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

package blitter

import (
	"runtime"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/logger"
)

// Init the backend and enable the blitter. If the backend fails to initialise
// then the error is logged and the null backend is used instead. The
// returned error is the initialisation error of the backend, if any. The
// blitter is enabled in either case.
//
// The calling goroutine becomes the display thread. Render() and the mode
// switch must only be called from this goroutine.
func (blt *Blitter) Init(backend display.Backend) error {
	blt.crit.Lock()
	defer blt.crit.Unlock()

	if blt.enabled.Load() {
		blt.disableAndWait()
		blt.backend.Close()
	}

	blt.display.Bind()
	blt.modes.BindDisplayThread()

	blt.ring.Reset()
	blt.pending.Store(false)

	blt.session = display.NewSession()
	short := blt.session.Short()
	blt.shortSession.Store(&short)

	logger.Logf(logger.Allow, "blitter", "initialising %s backend (session %s)", backend.Kind(), blt.session)

	var initErr error

	if err := backend.Init(); err != nil {
		initErr = curated.Errorf(display.InitError, err)
		logger.Log(logger.Allow, "blitter", initErr)
		backend.Close()

		blt.stats.failures.Add(1)
		backend = nullvideo.NewBackend(0, 0)
		_ = backend.Init()
		logger.Logf(logger.Allow, "blitter", "falling back to %s backend", backend.Kind())
	}

	blt.backend = backend
	blt.enabled.Store(true)

	return initErr
}

// disableAndWait disables the blitter and waits for any Submit() in progress
// to finish.
func (blt *Blitter) disableAndWait() {
	blt.enabled.Store(false)
	for blt.inflight.Load() > 0 {
		runtime.Gosched()
	}
}

// Close the blitter and the backend. Submit() can still be called after
// Close() but all frames will be rejected.
//
// Must only be called on the display thread.
func (blt *Blitter) Close() {
	// phase one: disable and detach the backend under the lock. a Render() in
	// progress will finish before the lock is acquired. lifecycle calls made
	// after this point go to the null backend
	blt.crit.Lock()
	blt.enabled.Store(false)
	backend := blt.backend
	session := blt.session
	w, h := backend.DrawableSize()
	blt.backend = nullvideo.NewBackend(w, h)
	_ = blt.backend.Init()
	blt.crit.Unlock()

	// phase two: wait for the producer to leave Submit() and then destroy
	// the resources
	blt.disableAndWait()
	backend.Close()

	blt.crit.Lock()
	defer blt.crit.Unlock()

	// Init() may have been called during phase two
	if !blt.enabled.Load() {
		blt.ring.Reset()
		blt.pending.Store(false)
	}

	logger.Logf(logger.Allow, "blitter", "closed %s backend (session %s)", backend.Kind(), session)
}

// Pause or resume the backend.
func (blt *Blitter) Pause(paused bool) {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	blt.paused.Store(paused)
	blt.backend.Pause(paused)
}

// Resize the window.
func (blt *Blitter) Resize(w, h int) {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	blt.backend.Resize(w, h)
	blt.pending.Store(true)
}

// SetFullscreen switches the window between fullscreen and windowed.
func (blt *Blitter) SetFullscreen(fullscreen bool) {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	blt.backend.SetFullscreen(fullscreen)
	blt.pending.Store(true)
}

// ReloadOptions causes the backend to read its options again.
func (blt *Blitter) ReloadOptions() {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	blt.backend.ReloadOptions()
	blt.pending.Store(true)
}

// SetTitle sets the title of the window if the backend has one.
func (blt *Blitter) SetTitle(title string) {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	if t, ok := blt.backend.(display.Title); ok {
		t.SetTitle(title)
	}
}

// DeviceReset should be called when the graphics device has been reset and
// textures have been lost. The backend recreates its textures. If that fails
// then the backend is replaced by the null backend.
func (blt *Blitter) DeviceReset() {
	blt.crit.Lock()
	defer blt.crit.Unlock()

	logger.Logf(logger.Allow, "blitter", "device reset: reinitialising %s backend", blt.backend.Kind())

	if err := blt.backend.Reinit(); err != nil {
		blt.fail(curated.Errorf(display.InitError, err))
	}
	blt.pending.Store(true)
}
