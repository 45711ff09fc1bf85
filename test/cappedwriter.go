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

package test

import (
	"fmt"
)

// CappedWriter is an implementation of io.Writer that stops buffering once a
// predefined size is reached.
type CappedWriter struct {
	buffer []byte
	size   int
}

// NewCappedWriter is the preferred method of initialisation for the
// CappedWriter type.
func NewCappedWriter(size int) (*CappedWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size for CappedWriter (%d)", size)
	}
	return &CappedWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

func (c *CappedWriter) String() string {
	return string(c.buffer)
}

// Reset empties the writer's buffer.
func (c *CappedWriter) Reset() {
	c.buffer = c.buffer[:0]
}

// Full returns true if no more bytes will be buffered.
func (c *CappedWriter) Full() bool {
	return len(c.buffer) >= c.size
}

// Write implements io.Writer. Bytes beyond the cap are silently discarded.
func (c *CappedWriter) Write(p []byte) (int, error) {
	remaining := c.size - len(c.buffer)
	if remaining <= 0 {
		return 0, nil
	}
	if len(p) <= remaining {
		c.buffer = append(c.buffer, p...)
		return len(p), nil
	}
	c.buffer = append(c.buffer, p[:remaining]...)
	return remaining, nil
}
