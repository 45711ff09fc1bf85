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

package display

import (
	"github.com/google/uuid"
)

// Session identifies one initialisation of a backend. A new session is
// created every time the blitter initialises a backend. The session appears
// in log entries and in the filenames of screenshots, making it possible to
// match a screenshot with the log of the backend that produced it.
type Session struct {
	id uuid.UUID
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession() Session {
	return Session{id: uuid.New()}
}

// String returns the full session identifier.
func (s Session) String() string {
	return s.id.String()
}

// Short returns the first eight hexadecimal digits of the session
// identifier. Suitable for filenames.
func (s Session) Short() string {
	return s.id.String()[:8]
}

// IsZero returns true if the session has not been initialised.
func (s Session) IsZero() bool {
	return s.id == uuid.Nil
}
