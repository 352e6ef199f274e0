// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"log/slog"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/logx"
	"cogentcore.org/xrshell/settings"
)

// Stats are the counters of a [Router].
type Stats struct {
	capture.Stats

	// Frames is the number of frames run.
	Frames uint64

	// Deferred is the number of next-frame actions run.
	Deferred int

	// CameraControls is the number of times camera control began.
	CameraControls int

	// ModeSwitches is the number of routing mode changes.
	ModeSwitches int
}

// Router is the per-frame input loop. Each call to [Router.Frame] polls its
// [input.Source], selects the routing mode, builds the frame's
// [input.Snapshot], and routes it through the capture engine of its [Context].
// All of its methods must be called from the frame goroutine.
type Router struct {
	// Camera, if set, can take over the mouse-or-gamepad channel.
	Camera CameraController

	ctx       *Context
	source    input.Source
	tracker   input.Tracker
	forceMode input.Modes
	forced    bool
	mode      input.Modes
	started   bool
	inCamera  bool
	last      *input.Snapshot
	stats     Stats
}

// NewRouter returns a new router for the given context and source.
func NewRouter(ctx *Context, source input.Source) *Router {
	return &Router{ctx: ctx, source: source}
}

// Context returns the context of the router.
func (r *Router) Context() *Context {
	return r.ctx
}

// Mode returns the routing mode of the last frame.
func (r *Router) Mode() input.Modes {
	return r.mode
}

// InCameraControl returns whether the camera controller has the mouse.
func (r *Router) InCameraControl() bool {
	return r.inCamera
}

// Stats returns the counters so far.
func (r *Router) Stats() Stats {
	st := r.stats
	st.Stats = r.ctx.Arbiter.Stats()
	return st
}

// SetForceMode pins the routing mode, or returns to automatic
// mode selection if forced is false.
func (r *Router) SetForceMode(mode input.Modes, forced bool) {
	r.forceMode, r.forced = mode, forced
}

// ApplySettings applies the given settings. It must be called between
// frames, typically through [Context.RunNextFrame].
func (r *Router) ApplySettings(s *settings.Settings) {
	logx.SetUserLevel(s.Level())
	r.ctx.Arbiter.Strict = s.Strict
	r.tracker.Deadzone = s.GamepadDeadzone
	r.SetForceMode(s.Mode())
	if oc, ok := r.Camera.(*OrbitCamera); ok {
		oc.Modifiers = s.Modifiers()
	}
	slog.Debug("settings applied", "strict", s.Strict, "force_mode", s.ForceMode)
}

// Frame runs one frame of input routing and returns its snapshot.
// It fails with [capture.ErrReentrant] inside a capture callback.
func (r *Router) Frame() (*input.Snapshot, error) {
	if err := r.ctx.Guard.Check("Frame"); err != nil {
		return nil, err
	}
	r.stats.Deferred += r.ctx.runDeferred()

	st := r.source.Poll()
	mode := input.SelectMode(st.Devices)
	if r.forced {
		mode = r.forceMode
	}
	if r.started && mode != r.mode {
		r.switchMode(mode)
	}
	r.mode, r.started = mode, true

	a := r.ctx.Arbiter
	in := r.tracker.Build(mode, st, input.Captured{
		Mouse: a.Captured(capture.MouseOrGamepad),
		Touch: a.Captured(capture.Touch),
		Left:  a.Captured(capture.SpatialLeft),
		Right: a.Captured(capture.SpatialRight),
	})
	r.last = in
	r.stats.Frames++

	r.override(in)
	var err error
	switch mode {
	case input.SpatialMode:
		err = r.routeSpatial(in)
	case input.TouchMode:
		err = r.routeTouch(in)
	default:
		err = r.routeMouseOrGamepad(in)
	}
	return in, err
}

// override gives every override behavior the snapshot before arbitration.
func (r *Router) override(in *input.Snapshot) {
	for _, o := range r.ctx.Overrides.Members() {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("override input panicked", "panic", rec)
				}
			}()
			o.OverrideInput(in)
		}()
	}
}

// switchMode ends the hovers and camera control of the previous mode.
// Its captures are kept; they are updated again once the mode returns,
// and are ended by forced termination like any other capture.
func (r *Router) switchMode(mode input.Modes) {
	slog.Info("input mode changed", "from", r.mode, "to", mode)
	r.stats.ModeSwitches++
	in := r.lastSnapshot()
	if r.inCamera {
		r.endCamera(in)
	}
	errors.Log(r.ctx.Hover.Terminate(in, capture.ModeChannels(r.mode)...))
}

// FocusLost must be called when the window loses focus. It force-ends
// every capture, ends every hover and interrupts camera control.
func (r *Router) FocusLost() error {
	if err := r.ctx.Guard.Check("FocusLost"); err != nil {
		return err
	}
	slog.Debug("focus lost")
	in := r.lastSnapshot()
	if r.inCamera {
		r.endCamera(in)
	}
	if err := r.ctx.Arbiter.ForceEndAll(); err != nil {
		return err
	}
	return r.ctx.Hover.TerminateAll(in)
}

func (r *Router) lastSnapshot() *input.Snapshot {
	if r.last == nil {
		return input.Empty
	}
	return r.last
}
