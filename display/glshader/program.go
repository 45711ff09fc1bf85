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
	"bufio"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
)

// program is a linked shader program.
type program struct {
	handle uint32
}

func (prg *program) destroy() {
	if prg.handle != 0 {
		gl.DeleteProgram(prg.handle)
		prg.handle = 0
	}
}

func (prg *program) uniform(name string) int32 {
	return gl.GetUniformLocation(prg.handle, gl.Str(name+"\x00"))
}

func (prg *program) attrib(name string) int32 {
	return gl.GetAttribLocation(prg.handle, gl.Str(name+"\x00"))
}

// newProgram compiles and links the vertex and fragment sources.
func newProgram(vertProgram string, fragProgram string) (*program, error) {
	vertHandle, err := compile(gl.VERTEX_SHADER, vertProgram)
	if err != nil {
		return nil, curated.Errorf(display.ShaderError, fmt.Sprintf("vertex: %v", err))
	}
	defer gl.DeleteShader(vertHandle)

	fragHandle, err := compile(gl.FRAGMENT_SHADER, fragProgram)
	if err != nil {
		return nil, curated.Errorf(display.ShaderError, fmt.Sprintf("fragment: %v", err))
	}
	defer gl.DeleteShader(fragHandle)

	prg := &program{handle: gl.CreateProgram()}
	gl.AttachShader(prg.handle, vertHandle)
	gl.AttachShader(prg.handle, fragHandle)
	gl.LinkProgram(prg.handle)

	var linked int32
	gl.GetProgramiv(prg.handle, gl.LINK_STATUS, &linked)
	if linked == 0 {
		var logLength int32
		gl.GetProgramiv(prg.handle, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prg.handle, logLength, &logLength, gl.Str(log))
		prg.destroy()
		return nil, curated.Errorf(display.ShaderError, fmt.Sprintf("link: %s", strings.TrimRight(log, "\x00")))
	}

	return prg, nil
}

func compile(typ uint32, source string) (uint32, error) {
	handle := gl.CreateShader(typ)

	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(handle, 1, csource, nil)
	gl.CompileShader(handle)

	var isCompiled int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled == 0 {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		// the log length includes the NULL character
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, &logLength, gl.Str(log))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00"))
	}

	return handle, nil
}

// splitShader prepares a single file shader for compilation as a vertex
// shader and as a fragment shader. The source should use the VERTEX and
// FRAGMENT macros to select the code for each stage. The macros are defined
// immediately after the #version directive, or at the start of the source if
// there is no #version directive.
func splitShader(source string) (string, string, error) {
	if !strings.Contains(source, "VERTEX") || !strings.Contains(source, "FRAGMENT") {
		return "", "", fmt.Errorf("shader does not define VERTEX and FRAGMENT sections")
	}

	var version string
	var body strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := scanner.Text()
		if version == "" && strings.HasPrefix(strings.TrimSpace(line), "#version") {
			version = strings.TrimSpace(line)
			continue
		}
		body.WriteString(line)
		body.WriteRune('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	if version == "" {
		version = "#version 150 core"
	}

	vert := fmt.Sprintf("%s\n#define VERTEX\n%s", version, body.String())
	frag := fmt.Sprintf("%s\n#define FRAGMENT\n%s", version, body.String())

	return vert, frag, nil
}
