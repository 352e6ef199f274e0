// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"log/slog"

	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/input"
)

func (r *Router) routeMouseOrGamepad(in *input.Snapshot) error {
	a := r.ctx.Arbiter
	if !r.inCamera && r.Camera != nil && !a.Captured(capture.MouseOrGamepad) && r.wantsCamera(in) {
		if err := r.ctx.Hover.Terminate(in, capture.MouseOrGamepad); err != nil {
			return err
		}
		r.inCamera = true
		r.stats.CameraControls++
		slog.Debug("camera control begin")
	}
	if r.inCamera {
		if !r.updateCamera(in) {
			r.endCamera(in)
		}
		return nil
	}

	if err := a.Update(in); err != nil {
		return err
	}
	if err := a.Arbitrate(in); err != nil {
		return err
	}
	if !a.Captured(capture.MouseOrGamepad) {
		return r.ctx.Hover.Update(in, capture.MouseOrGamepad)
	}
	return nil
}

// The camera callbacks run under the guard like capture callbacks,
// and a panic ends camera control.

func (r *Router) wantsCamera(in *input.Snapshot) (wants bool) {
	defer r.ctx.Guard.Enter("WantsCameraControl")()
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("camera control panicked", "callback", "WantsCameraControl", "panic", rec)
			wants = false
		}
	}()
	return r.Camera.WantsCameraControl(in)
}

func (r *Router) updateCamera(in *input.Snapshot) (more bool) {
	defer r.ctx.Guard.Enter("UpdateCameraControl")()
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("camera control panicked", "callback", "UpdateCameraControl", "panic", rec)
			more = false
		}
	}()
	return r.Camera.UpdateCameraControl(in)
}

func (r *Router) endCamera(in *input.Snapshot) {
	r.inCamera = false
	slog.Debug("camera control end")
	defer r.ctx.Guard.Enter("EndCameraControl")()
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("camera control panicked", "callback", "EndCameraControl", "panic", rec)
		}
	}()
	r.Camera.EndCameraControl(in)
}
