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
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// the maximum number of queued errors reported by glErrors()
const maxErrors = 10

// glErrors drains the GL error queue. Returns nil if there are no errors.
func glErrors() error {
	var codes []string
	for range maxErrors {
		e := gl.GetError()
		if e == gl.NO_ERROR {
			break
		}
		codes = append(codes, errorName(e))
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("gl errors: %s", strings.Join(codes, ", "))
}

func errorName(e uint32) string {
	switch e {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	}
	return fmt.Sprintf("%#04x", e)
}
