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

package glshader

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/vidshim/vidshim/display/glshader/shaders"
)

// osd draws lines of text over the frame with dear imgui.
type osd struct {
	ctx *imgui.Context
	prg *program

	fontTexture uint32

	vboHandle      uint32
	elementsHandle uint32

	// shader locations
	projMtx  int32
	texture  int32
	position int32
	uv       int32
	color    int32
}

func newOSD() (*osd, error) {
	o := &osd{}

	o.ctx = imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	io.SetIniFilename("")

	var err error

	o.prg, err = newProgram(string(shaders.OSDVertexShader), string(shaders.OSDFragShader))
	if err != nil {
		o.ctx.Destroy()
		return nil, err
	}

	o.projMtx = o.prg.uniform("ProjMtx")
	o.texture = o.prg.uniform("Texture")
	o.position = o.prg.attrib("Position")
	o.uv = o.prg.attrib("UV")
	o.color = o.prg.attrib("Color")

	// font texture
	atlas := io.Fonts()
	atlas.AddFontDefault()
	image := atlas.TextureDataAlpha8()
	gl.GenTextures(1, &o.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, o.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height), 0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	atlas.SetTextureID(imgui.TextureID(o.fontTexture))

	gl.GenBuffers(1, &o.vboHandle)
	gl.GenBuffers(1, &o.elementsHandle)

	return o, nil
}

func (o *osd) destroy() {
	if o.vboHandle != 0 {
		gl.DeleteBuffers(1, &o.vboHandle)
		o.vboHandle = 0
	}
	if o.elementsHandle != 0 {
		gl.DeleteBuffers(1, &o.elementsHandle)
		o.elementsHandle = 0
	}
	if o.fontTexture != 0 {
		gl.DeleteTextures(1, &o.fontTexture)
		o.fontTexture = 0
	}
	o.prg.destroy()
	o.ctx.Destroy()
}

// draw the lines in the top-left corner of the window. the window size is in
// screen coordinates and the framebuffer size is in pixels
func (o *osd) draw(lines []string, winW, winH, fbW, fbH int) {
	if len(lines) == 0 || winW <= 0 || winH <= 0 || fbW <= 0 || fbH <= 0 {
		return
	}

	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: float32(winW), Y: float32(winH)})
	io.SetDeltaTime(1.0 / 60.0)

	imgui.NewFrame()
	imgui.SetNextWindowPos(imgui.Vec2{X: 10, Y: 10})
	imgui.SetNextWindowBgAlpha(0.5)
	if imgui.BeginV("osd", nil, imgui.WindowFlagsNoDecoration|imgui.WindowFlagsAlwaysAutoResize|
		imgui.WindowFlagsNoSavedSettings|imgui.WindowFlagsNoFocusOnAppearing|imgui.WindowFlagsNoNav|
		imgui.WindowFlagsNoInputs|imgui.WindowFlagsNoMove) {
		for _, l := range lines {
			imgui.Text(l)
		}
	}
	imgui.End()
	imgui.Render()

	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbW) / float32(winW),
		Y: float32(fbH) / float32(winH),
	})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.SCISSOR_TEST)
	defer gl.Disable(gl.BLEND)

	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	projMtx := [4][4]float32{
		{2.0 / float32(winW), 0.0, 0.0, 0.0},
		{0.0, 2.0 / -float32(winH), 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	gl.UseProgram(o.prg.handle)
	gl.Uniform1i(o.texture, 0)
	gl.UniformMatrix4fv(o.projMtx, 1, false, &projMtx[0][0])
	gl.ActiveTexture(gl.TEXTURE0)

	// the VAO is recreated every frame
	var vaoHandle uint32
	gl.GenVertexArrays(1, &vaoHandle)
	defer gl.DeleteVertexArrays(1, &vaoHandle)
	gl.BindVertexArray(vaoHandle)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vboHandle)

	gl.EnableVertexAttribArray(uint32(o.uv))
	gl.EnableVertexAttribArray(uint32(o.position))
	gl.EnableVertexAttribArray(uint32(o.color))
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointerWithOffset(uint32(o.uv), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(uint32(o.position), 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(uint32(o.color), 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetCol))

	indexSize := imgui.IndexBufferLayout()
	drawType := gl.UNSIGNED_SHORT
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		var indexBufferOffset uintptr

		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, o.elementsHandle)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clipRect := cmd.ClipRect()
				gl.Scissor(int32(clipRect.X), int32(fbH)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
				gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), uint32(drawType), indexBufferOffset)
			}
			indexBufferOffset += uintptr(cmd.ElementCount() * indexSize)
		}
	}
}
