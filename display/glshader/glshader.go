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

// Package glshader implements the OpenGL backend. Frames are uploaded to a
// texture through a pixel buffer object and drawn with a shader program. The
// default program draws the texture unchanged. A custom program can be loaded
// from a file named in the display.shader preference.
//
// Custom shaders are a single GLSL file with sections selected by the VERTEX
// and FRAGMENT macros. The following inputs are available:
//
//	attributes: VertexCoord, TexCoord, Color
//	uniforms:   MVPMatrix, Texture, InputSize, OutputSize, TextureSize,
//	            FrameCount, FrameDirection
//
// If a custom shader fails to compile the error is logged and the default
// program is used.
//
// OpenGL 3.0 or better is required.
package glshader

import (
	"fmt"
	"image"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/glshader/shaders"
	"github.com/vidshim/vidshim/display/sdlwindow"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/logger"
)

// vertex coordinates, texture coordinates and color (white) making a quad as
// a triangle strip
var surface = []float32{
	-1, 1, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 0, 1, 1, 1, 1,
	-1, -1, 0, 1, 1, 1, 1, 1,
	1, -1, 1, 1, 1, 1, 1, 1,
}

var identity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// FrameCount wraps at this value
const frameCountWrap = 1024

// Backend implements the display.Backend interface.
type Backend struct {
	wnd   *sdlwindow.Window
	prefs *display.Preferences

	glContext sdl.GLContext

	vao     uint32
	vbo     uint32
	texture uint32
	pbo     uint32

	prg *program

	// uniform locations of the current program
	inputSize   int32
	outputSize  int32
	textureSize int32
	frameCount  int32

	frames int32

	texW, texH int

	// options as they were when last applied
	vsync  bool
	linear bool
	shader string

	paused bool

	osd      *osd
	osdLines []string
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend(wnd *sdlwindow.Window, prefs *display.Preferences) *Backend {
	return &Backend{
		wnd:   wnd,
		prefs: prefs,
	}
}

// Kind implements the display.Backend interface.
func (b *Backend) Kind() display.Kind {
	return display.Shader
}

// Init implements the display.Backend interface.
func (b *Backend) Init() error {
	if b.wnd == nil {
		return curated.Errorf(display.InitError, "no window")
	}

	var err error

	b.glContext, err = b.wnd.SDL().GLCreateContext()
	if err != nil {
		return curated.Errorf(display.InitError, err)
	}

	err = b.wnd.SDL().GLMakeCurrent(b.glContext)
	if err != nil {
		return curated.Errorf(display.InitError, err)
	}

	err = gl.Init()
	if err != nil {
		return curated.Errorf(display.InitError, err)
	}

	logger.Logf(logger.Allow, "glshader", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "glshader", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "glshader", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	var major int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	if major < 3 {
		return curated.Errorf(display.InitError, fmt.Sprintf("OpenGL 3.0 is required (found %d.x)", major))
	}

	// errors generated by the context creation
	if err := glErrors(); err != nil {
		return curated.Errorf(display.InitError, err)
	}

	b.vsync = b.prefs.VSync.Get().(bool)
	b.setSwapInterval()

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(surface)*4, gl.Ptr(surface), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.pbo)

	err = b.createTexture()
	if err != nil {
		return err
	}

	b.applyShader()

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	b.osd, err = newOSD()
	if err != nil {
		// the frame can still be shown without the OSD
		logger.Log(logger.Allow, "glshader", err)
		b.osd = nil
	}

	if err := glErrors(); err != nil {
		return curated.Errorf(display.InitError, err)
	}

	b.wnd.Show()

	return nil
}

func (b *Backend) setSwapInterval() {
	i := 0
	if b.vsync {
		i = 1
	}
	if err := sdl.GLSetSwapInterval(i); err != nil {
		logger.Logf(logger.Allow, "glshader", "GLSetSwapInterval(%d): %v", i, err)
	}
}

func (b *Backend) createTexture() error {
	b.linear = b.prefs.LinearFilter()

	gl.GenTextures(1, &b.texture)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	border := [4]float32{0, 0, 0, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	b.setFilter()

	b.texW = 0
	b.texH = 0

	if err := glErrors(); err != nil {
		return curated.Errorf(display.TextureError, err)
	}
	return nil
}

func (b *Backend) setFilter() {
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	if b.linear {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

// applyShader loads the shader named in the preferences, or the default
// shader if none is named or if the named shader cannot be used.
func (b *Backend) applyShader() {
	b.shader = b.prefs.Shader.String()

	var prg *program
	var err error

	if b.shader != "" {
		prg, err = loadCustomShader(b.shader)
		if err != nil {
			logger.Logf(logger.Allow, "glshader", "%v: using default shader", err)
		} else {
			logger.Logf(logger.Allow, "glshader", "using shader %s", b.shader)
		}
	}

	if prg == nil {
		prg, err = newProgram(string(shaders.DefaultVertexShader), string(shaders.DefaultFragShader))
		if err != nil {
			// the default shader has been tested and will compile. an error
			// here means something is very wrong with the GL driver
			logger.Log(logger.Allow, "glshader", err)
			return
		}
	}

	if b.prg != nil {
		b.prg.destroy()
	}
	b.prg = prg

	gl.UseProgram(b.prg.handle)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	const stride = 8 * 4

	if loc := b.prg.attrib("VertexCoord"); loc != -1 {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 2, gl.FLOAT, false, stride, 0)
	}
	if loc := b.prg.attrib("TexCoord"); loc != -1 {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 2, gl.FLOAT, false, stride, 2*4)
	}
	if loc := b.prg.attrib("Color"); loc != -1 {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 4, gl.FLOAT, false, stride, 4*4)
	}
	if loc := b.prg.uniform("MVPMatrix"); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &identity[0])
	}
	if loc := b.prg.uniform("FrameDirection"); loc != -1 {
		gl.Uniform1i(loc, 1)
	}
	if loc := b.prg.uniform("Texture"); loc != -1 {
		gl.Uniform1i(loc, 0)
	}

	b.inputSize = b.prg.uniform("InputSize")
	b.outputSize = b.prg.uniform("OutputSize")
	b.textureSize = b.prg.uniform("TextureSize")
	b.frameCount = b.prg.uniform("FrameCount")

	b.frames = 0
}

func loadCustomShader(path string) (*program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(display.ShaderError, err)
	}
	vert, frag, err := splitShader(string(source))
	if err != nil {
		return nil, curated.Errorf(display.ShaderError, err)
	}
	return newProgram(vert, frag)
}

// Close implements the display.Backend interface.
func (b *Backend) Close() {
	if b.glContext == nil {
		return
	}

	if b.osd != nil {
		b.osd.destroy()
		b.osd = nil
	}
	if b.prg != nil {
		b.prg.destroy()
		b.prg = nil
	}
	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
		b.texture = 0
	}
	if b.pbo != 0 {
		gl.DeleteBuffers(1, &b.pbo)
		b.pbo = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}

	sdl.GLDeleteContext(b.glContext)
	b.glContext = nil
}

// Pause implements the display.Backend interface.
func (b *Backend) Pause(paused bool) {
	b.paused = paused
}

// Resize implements the display.Backend interface.
func (b *Backend) Resize(w, h int) {
	b.wnd.SetSize(w, h)
}

// SetFullscreen implements the display.Backend interface.
func (b *Backend) SetFullscreen(fullscreen bool) {
	b.wnd.SetFullscreen(fullscreen)
}

// SetTitle implements the display.Title interface.
func (b *Backend) SetTitle(title string) {
	b.wnd.SetTitle(title)
}

// SetOSD implements the display.OSD interface.
func (b *Backend) SetOSD(lines []string) {
	b.osdLines = lines
}

// ReloadOptions implements the display.Backend interface.
func (b *Backend) ReloadOptions() {
	if b.glContext == nil {
		return
	}

	if vsync := b.prefs.VSync.Get().(bool); vsync != b.vsync {
		b.vsync = vsync
		b.setSwapInterval()
	}

	if linear := b.prefs.LinearFilter(); linear != b.linear {
		b.linear = linear
		b.setFilter()
	}

	if b.prefs.Shader.String() != b.shader {
		b.applyShader()
	}
}

// Reinit implements the display.Backend interface.
func (b *Backend) Reinit() error {
	if b.glContext == nil {
		return curated.Errorf(display.InitError, "no context")
	}
	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
		b.texture = 0
	}
	return b.createTexture()
}

// DrawableSize implements the display.Backend interface.
func (b *Backend) DrawableSize() (int, int) {
	return b.wnd.GLDrawableSize()
}

// TextureSize implements the display.Backend interface.
func (b *Backend) TextureSize() (int, int) {
	return b.texW, b.texH
}

// ResizeTexture implements the display.Backend interface.
func (b *Backend) ResizeTexture(w, h int) error {
	if w <= 0 || h <= 0 || w > framering.MaxWidth || h > framering.MaxHeight {
		return curated.Errorf(display.TextureError, fmt.Sprintf("invalid size %dx%d", w, h))
	}

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	if err := glErrors(); err != nil {
		return curated.Errorf(display.TextureError, err)
	}

	b.texW = w
	b.texH = h

	return nil
}

// frameUniforms are the values of the size and frame count uniforms for one
// frame.
type frameUniforms struct {
	input   [2]float32
	texture [2]float32
	output  [2]float32
	frame   int32
}

func newFrameUniforms(texW, texH int, viewport image.Rectangle, frame int32) frameUniforms {
	return frameUniforms{
		input:   [2]float32{float32(texW), float32(texH)},
		texture: [2]float32{float32(texW), float32(texH)},
		output:  [2]float32{float32(viewport.Dx()), float32(viewport.Dy())},
		frame:   frame,
	}
}

// setUniforms must be called with the frame program in use. the OSD binds its
// own program so the frame program cannot be assumed outside of Present()
func (b *Backend) setUniforms(u frameUniforms) {
	if b.inputSize != -1 {
		gl.Uniform2f(b.inputSize, u.input[0], u.input[1])
	}
	if b.textureSize != -1 {
		gl.Uniform2f(b.textureSize, u.texture[0], u.texture[1])
	}
	if b.outputSize != -1 {
		gl.Uniform2f(b.outputSize, u.output[0], u.output[1])
	}
	if b.frameCount != -1 {
		gl.Uniform1i(b.frameCount, u.frame)
	}
}

// upload the slot to the texture through the pixel buffer object. the buffer
// is orphaned each frame so that the driver need not wait for the previous
// transfer to complete
func (b *Backend) upload(slot *framering.Slot) error {
	size := slot.Height * framering.Stride

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, b.pbo)
	defer gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)

	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, size, nil, gl.STREAM_DRAW)
	ptr := gl.MapBufferRange(gl.PIXEL_UNPACK_BUFFER, 0, size, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		return fmt.Errorf("cannot map pixel buffer")
	}
	copy(unsafe.Slice((*byte)(ptr), size), slot.Pix[:size])
	if !gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER) {
		return fmt.Errorf("pixel buffer corrupted")
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, framering.RowLength)
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(slot.Width), int32(slot.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.PtrOffset(0))

	return nil
}

// Present implements the display.Backend interface.
func (b *Backend) Present(slot *framering.Slot, viewport image.Rectangle) error {
	if b.glContext == nil || b.prg == nil {
		return curated.Errorf(display.PresentError, "not initialised")
	}

	fbW, fbH := b.wnd.GLDrawableSize()

	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if err := b.upload(slot); err != nil {
		return curated.Errorf(display.PresentError, err)
	}

	// the viewport origin in OpenGL is the bottom-left corner
	gl.Viewport(int32(viewport.Min.X), int32(fbH-viewport.Max.Y), int32(viewport.Dx()), int32(viewport.Dy()))

	gl.UseProgram(b.prg.handle)
	gl.BindVertexArray(b.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	b.setUniforms(newFrameUniforms(b.texW, b.texH, viewport, b.frames))

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	if !b.paused {
		b.frames = (b.frames + 1) % frameCountWrap
	}

	if b.osd != nil && b.prefs.OSD.Get().(bool) {
		winW, winH := b.wnd.Size()
		b.osd.draw(b.osdLines, winW, winH, fbW, fbH)
	}

	// the slot is released by the caller once Present() returns so the
	// transfer must be complete
	gl.Finish()

	if err := glErrors(); err != nil {
		return curated.Errorf(display.PresentError, err)
	}

	b.wnd.SDL().GLSwap()

	return nil
}
