// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/input"
)

// routeSpatial routes the two controllers. Each side hovers
// independently while the other may be captured.
func (r *Router) routeSpatial(in *input.Snapshot) error {
	a := r.ctx.Arbiter
	if err := a.Update(in); err != nil {
		return err
	}
	if err := a.Arbitrate(in); err != nil {
		return err
	}
	for _, ch := range [2]capture.Channel{capture.SpatialLeft, capture.SpatialRight} {
		if a.Captured(ch) {
			continue
		}
		if err := r.ctx.Hover.Update(in, ch); err != nil {
			return err
		}
	}
	return nil
}
