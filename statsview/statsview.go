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


//go:build statsview

package statsview

import (
	"context"
	"fmt"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/vidshim/vidshim/logger"
)

// Launch the stats server. The server is shut down when the context is done.
// The returned string is the URL of the graphs.
func Launch(ctx context.Context) string {
	viewer.SetConfiguration(viewer.WithAddr(Address))

	mgr := statsview.New()
	go mgr.Start()

	go func() {
		<-ctx.Done()
		mgr.Stop()
		logger.Log(logger.Allow, "statsview", "stopped")
	}()

	url := fmt.Sprintf("http://%s%s", Address, Path)
	logger.Logf(logger.Allow, "statsview", "running at %s", url)

	return url
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
