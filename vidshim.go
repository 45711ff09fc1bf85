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

package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"github.com/vidshim/vidshim/blitter"
	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/glshader"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/display/sdlrender"
	"github.com/vidshim/vidshim/display/sdlwindow"
	"github.com/vidshim/vidshim/eventloop"
	"github.com/vidshim/vidshim/limiter"
	"github.com/vidshim/vidshim/logger"
	"github.com/vidshim/vidshim/modalflag"
	"github.com/vidshim/vidshim/modeswitch"
	"github.com/vidshim/vidshim/paths"
	"github.com/vidshim/vidshim/prefs"
	"github.com/vidshim/vidshim/screenshot"
	"github.com/vidshim/vidshim/statsview"
	"github.com/vidshim/vidshim/testcard"
	"github.com/vidshim/vidshim/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// Display is created, serviced and destroyed on the main thread.
type Display interface {
	// cleanup resources used by the display
	Destroy()

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread
	Service()
}

// communication between the main() function and the launch() function. this
// is required because SDL requires window event handling (including
// creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (Display, error)

	// the result of creator will be returned on either of these two channels
	creation      chan Display
	creationError chan error
}

// the main goroutine must stay on the main thread
func init() {
	runtime.LockOSThread()
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (Display, error)),
		creation:      make(chan Display),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	var disp Display
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true
			if disp != nil {
				disp.Destroy()
			}

		case creator := <-sync.creator:
			if disp != nil {
				disp.Destroy()
			}

			d, err := creator()
			if err != nil {
				disp = nil
				sync.creationError <- err
			} else {
				disp = d
				sync.creation <- d
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if disp != nil {
					disp.Destroy()
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if disp != nil {
				disp.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// create the display and to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("RUN", "TESTCARD", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync, false)

	case "TESTCARD":
		err = run(md, sync, true)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Println(v)
	if *revision {
		fmt.Println(r)
		fmt.Println(version.GoVersion())
	}

	return nil
}

func run(md *modalflag.Modes, sync *mainSync, testcardMode bool) error {
	md.NewMode()

	backend := md.AddString("backend", "", "display backend: software, hardware, opengl, null (default from preferences)")
	fullscreen := md.AddBool("fullscreen", false, "start in fullscreen")
	prefsFile := md.AddString("prefs", "", "preferences file (default in config directory)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	memvizFile := md.AddString("memviz", "", "write graphviz file of the display state on exit")
	set := md.AddString("set", "", "override preferences (key::value; key::value)")
	timings := md.AddString("timings", "desktop", "display timings for mode switches: desktop, 15khz")

	stats := new(bool)
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	cfg := testcard.Config{
		Pattern: testcard.Bars,
		Mode:    testcard.Script[0],
	}

	var pattern *string
	var size *image.Point
	var hz *float64
	var interlace *bool
	var cycle *bool
	var frames *int

	if testcardMode {
		pattern = md.AddString("pattern", "bars", "test card pattern: bars, grid, ramp, noise")
		size = md.AddSize("size", image.Pt(640, 480), "size of frame (WxH)")
		hz = md.AddFloat64("hz", 60, "refresh rate of display mode")
		interlace = md.AddBool("interlace", false, "interlaced display mode")
		cycle = md.AddBool("cycle", false, "cycle through display modes")
		frames = md.AddInt("frames", 0, "number of frames to produce before quitting (0 is unlimited)")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), true)
	} else {
		logger.SetEcho(nil, false)
	}

	if testcardMode {
		cfg.Pattern, err = testcard.ParsePattern(*pattern)
		if err != nil {
			return err
		}
		cfg.Mode = modeswitch.DisplayMode{
			Width:     size.X,
			Height:    size.Y,
			Refresh:   float32(*hz),
			Interlace: *interlace,
		}
		cfg.Cycle = *cycle
		cfg.Frames = *frames
	}

	// preferences given on the command line take precedence over the
	// preferences file
	if *set != "" {
		prefs.PushCommandLineStack(*set)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "vidshim", "unused preferences: %s", unused)
			}
		}()
	}

	dspPrefs, err := display.NewPreferences(*prefsFile)
	if err != nil {
		return err
	}

	if *backend != "" {
		err = dspPrefs.Backend.Set(*backend)
		if err != nil {
			return err
		}
	}
	if *fullscreen {
		err = dspPrefs.FullScreen.Set(true)
		if err != nil {
			return err
		}
	}

	card, err := testcard.NewCard(cfg)
	if err != nil {
		return err
	}

	shots := screenshot.NewWriter(func() string {
		if dir := dspPrefs.ScreenshotDir.String(); dir != "" {
			return dir
		}
		dir, err := paths.ResourcePath(paths.ScreenshotDir, "")
		if err != nil {
			logger.Log(logger.Allow, "vidshim", err)
			return ""
		}
		return dir
	})
	defer shots.Wait()

	// the blitter acknowledges every submission before Submit() returns so a
	// buffer of one is sufficient
	ack := make(chan struct{}, 1)

	var resolver modeswitch.Resolver
	switch strings.ToLower(*timings) {
	case "desktop":
		resolver = modeswitch.NewDesktopTable(0)
	case "15khz":
		resolver = modeswitch.NewLowFrequencyTable()
	default:
		return fmt.Errorf("unknown display timings (%s)", *timings)
	}

	blt, err := blitter.NewBlitter(blitter.Config{
		Ack:         func() { ack <- struct{}{} },
		Resolver:    resolver,
		Stretch:     dspPrefs.StretchMode,
		Screenshots: shots,
	})
	if err != nil {
		return err
	}

	kind := dspPrefs.Kind()

	sync.creator <- func() (Display, error) {
		return newDisplay(kind, dspPrefs, blt, *log)
	}

	var disp *vidDisplay
	select {
	case d := <-sync.creation:
		disp = d.(*vidDisplay)
	case err := <-sync.creationError:
		return err
	}

	lmtr := limiter.NewLimiter()
	defer lmtr.Stop()
	if disp.wnd != nil {
		lmtr.SetDisplay(disp.wnd)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *stats {
		fmt.Printf("stats server available at %s\n", statsview.Launch(ctx))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return card.Run(ctx, blt, ack, lmtr)
	})

	g.Go(func() error {
		hk := eventloop.NewHousekeeping(blt, disp.loop)
		hk.Kind = blt.Kind
		hk.Session = blt.Session
		return hk.Run(ctx)
	})

	// the window has been closed
	g.Go(func() error {
		select {
		case <-disp.quit:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	err = g.Wait()

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, blt); err != nil {
			logger.Log(logger.Allow, "vidshim", err)
		}
	}

	logger.Logf(logger.Allow, "vidshim", "%v", blt.Stats())

	return err
}

// vidDisplay implements the Display interface.
type vidDisplay struct {
	blt  *blitter.Blitter
	wnd  *sdlwindow.Window
	loop *eventloop.Loop

	// closed when the loop has received a quit event
	quit   chan struct{}
	closed bool
}

// newBackend is the factory for display backends.
func newBackend(kind display.Kind, wnd *sdlwindow.Window, dspPrefs *display.Preferences) display.Backend {
	switch kind {
	case display.Software, display.Hardware:
		return sdlrender.NewBackend(kind, wnd, dspPrefs)
	case display.Shader:
		return glshader.NewBackend(wnd, dspPrefs)
	}
	return nullvideo.NewBackend(0, 0)
}

// #mainthread
func newDisplay(kind display.Kind, dspPrefs *display.Preferences, blt *blitter.Blitter, verbose bool) (*vidDisplay, error) {
	var flags uint32 = sdl.INIT_EVENTS
	if kind != display.Null {
		flags |= sdl.INIT_VIDEO
	}

	err := sdl.Init(flags)
	if err != nil {
		return nil, curated.Errorf("vidshim: sdl: %v", err)
	}

	disp := &vidDisplay{
		blt:  blt,
		quit: make(chan struct{}),
	}

	if kind != display.Null {
		disp.wnd, err = sdlwindow.NewWindow()
		if err != nil {
			sdl.Quit()
			return nil, curated.Errorf("vidshim: %v", err)
		}
	}

	// a failure to initialise the backend is not fatal. the blitter will have
	// fallen back to the null backend
	err = blt.Init(newBackend(kind, disp.wnd, dspPrefs))
	if err != nil {
		logger.Log(logger.Allow, "vidshim", err)
	}

	if dspPrefs.FullScreen.Get().(bool) {
		blt.SetFullscreen(true)
	}

	disp.loop = eventloop.NewLoop(blt, disp.wnd, nil)
	disp.loop.Verbose = verbose

	return disp, nil
}

// Service implements the Display interface.
func (disp *vidDisplay) Service() {
	disp.loop.Service()
	if disp.loop.Quit && !disp.closed {
		disp.closed = true
		close(disp.quit)
	}
}

// Destroy implements the Display interface.
func (disp *vidDisplay) Destroy() {
	disp.blt.Close()
	if disp.wnd != nil {
		disp.wnd.Destroy()
		disp.wnd = nil
	}
	sdl.Quit()
}
