// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"cogentcore.org/xrshell/math32"
)

// Snapshot is the immutable aggregation of device signals for one frame
// in one routing mode. Only the devices of [Snapshot.Mode] are filled in;
// the others are zero. A *Snapshot passed to a behavior must not be modified.
type Snapshot struct {
	// Frame is the frame counter, starting at 1.
	Frame uint64

	// Mode is the routing mode this snapshot was built for.
	Mode Modes

	Modifiers Modifiers

	Mouse   Mouse
	Gamepad Gamepad
	Touch   Touch

	Left, Right Spatial

	// MouseCaptureActive is whether the mouse-or-gamepad channel was
	// captured at the start of the frame.
	MouseCaptureActive bool

	// TouchCaptureActive is whether the touch channel was
	// captured at the start of the frame.
	TouchCaptureActive bool

	// LeftCaptureActive is whether the left spatial channel was
	// captured at the start of the frame.
	LeftCaptureActive bool

	// RightCaptureActive is whether the right spatial channel was
	// captured at the start of the frame.
	RightCaptureActive bool
}

// Empty is a snapshot with no device signals, used when a
// forced termination happens outside of any frame.
var Empty = &Snapshot{}

// Captured holds the capture flags stamped onto a new snapshot.
type Captured struct {
	Mouse, Touch, Left, Right bool
}

// Tracker builds a [Snapshot] per frame from raw device [State],
// computing button edges against the previous frame.
type Tracker struct {
	// Deadzone is the radius under which gamepad sticks read as zero.
	Deadzone float32

	frame uint64
	prev  State
}

// Build builds the snapshot for the next frame. It must be called
// exactly once per frame.
func (tr *Tracker) Build(mode Modes, st State, captured Captured) *Snapshot {
	tr.frame++
	stepEdges(&st, &tr.prev)
	tr.prev = st

	sn := &Snapshot{
		Frame:              tr.frame,
		Mode:               mode,
		Modifiers:          st.Modifiers,
		MouseCaptureActive: captured.Mouse,
		TouchCaptureActive: captured.Touch,
		LeftCaptureActive:  captured.Left,
		RightCaptureActive: captured.Right,
	}
	switch mode {
	case SpatialMode:
		sn.Left = st.Left
		sn.Right = st.Right
	case TouchMode:
		sn.Touch = st.Touch
	default:
		sn.Mouse = st.Mouse
		sn.Gamepad = st.Gamepad
		sn.Gamepad.LeftStick = applyDeadzone(sn.Gamepad.LeftStick, tr.Deadzone)
		sn.Gamepad.RightStick = applyDeadzone(sn.Gamepad.RightStick, tr.Deadzone)
	}
	return sn
}

// Frame returns the number of the last frame built.
func (tr *Tracker) Frame() uint64 {
	return tr.frame
}

func stepEdges(st, prev *State) {
	st.Mouse.Left.step(prev.Mouse.Left)
	st.Mouse.Middle.step(prev.Mouse.Middle)
	st.Mouse.Right.step(prev.Mouse.Right)

	gp, pgp := &st.Gamepad, &prev.Gamepad
	gp.A.step(pgp.A)
	gp.B.step(pgp.B)
	gp.X.step(pgp.X)
	gp.Y.step(pgp.Y)
	gp.LeftShoulder.step(pgp.LeftShoulder)
	gp.RightShoulder.step(pgp.RightShoulder)
	gp.Start.step(pgp.Start)

	st.Touch.Began = st.Touch.Active() && !prev.Touch.Active()
	st.Touch.Ended = !st.Touch.Active() && prev.Touch.Active()

	for _, sp := range [2][2]*Spatial{{&st.Left, &prev.Left}, {&st.Right, &prev.Right}} {
		cur, old := sp[0], sp[1]
		cur.Trigger.step(old.Trigger)
		cur.Grip.step(old.Grip)
		cur.Primary.step(old.Primary)
		cur.Secondary.step(old.Secondary)
	}
}

// applyDeadzone zeroes sticks inside the radius and rescales
// the rest so that output starts at 0 at the edge of the deadzone.
func applyDeadzone(v math32.Vector2, radius float32) math32.Vector2 {
	if radius <= 0 {
		return v
	}
	l := v.Length()
	if l <= radius {
		return math32.Vector2{}
	}
	scaled := math32.Min((l-radius)/(1-radius), 1)
	return v.MulScalar(scaled / l)
}
