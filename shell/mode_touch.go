// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/input"
)

func (r *Router) routeTouch(in *input.Snapshot) error {
	a := r.ctx.Arbiter
	if err := a.Update(in); err != nil {
		return err
	}
	if err := a.Arbitrate(in); err != nil {
		return err
	}
	if !a.Captured(capture.Touch) {
		return r.ctx.Hover.Update(in, capture.Touch)
	}
	return nil
}
