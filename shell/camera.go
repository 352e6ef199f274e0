// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/math32"
)

// CameraController takes over the mouse-or-gamepad channel to move the
// camera. While it is in control, capture arbitration is suspended.
type CameraController interface {

	// WantsCameraControl returns whether camera control should begin.
	// It is only asked while the mouse-or-gamepad channel is free.
	WantsCameraControl(in *input.Snapshot) bool

	// UpdateCameraControl moves the camera, returning false when
	// camera control is finished.
	UpdateCameraControl(in *input.Snapshot) bool

	// EndCameraControl is called once when camera control ends,
	// including when it is interrupted.
	EndCameraControl(in *input.Snapshot)
}

// CameraRig is the camera moved by an [OrbitCamera].
type CameraRig interface {
	Orbit(delX, delY float32)
	Pan(delX, delY float32)
}

var (
	// OrbitFactor is the orbit angle per pixel of mouse movement.
	OrbitFactor = float32(0.025)

	// PanFactor is the pan distance per pixel of mouse movement.
	PanFactor = float32(0.001)
)

// OrbitCamera is a [CameraController] that orbits the camera while the left
// mouse button is dragged, and pans it with the middle button, as long as
// the drag started with [OrbitCamera.Modifiers] held.
type OrbitCamera struct {
	Rig CameraRig

	// Modifiers must all be held when the drag starts.
	Modifiers input.Modifiers

	// Distance scales the orbit and pan amounts; values under 1 count as 1.
	Distance float32
}

func (oc *OrbitCamera) WantsCameraControl(in *input.Snapshot) bool {
	if oc.Modifiers == 0 || !in.Modifiers.Has(oc.Modifiers) {
		return false
	}
	return in.Mouse.Left.Pressed || in.Mouse.Middle.Pressed
}

func (oc *OrbitCamera) UpdateCameraControl(in *input.Snapshot) bool {
	m := &in.Mouse
	if !m.Left.Down && !m.Middle.Down {
		return false
	}
	dist := math32.Max(oc.Distance, 1)
	dx, dy := m.Delta.X, m.Delta.Y
	if m.Middle.Down {
		del := PanFactor * dist
		oc.Rig.Pan(dx*del, -dy*del)
		return true
	}
	// orbit around one axis at a time
	if math32.Abs(dx) > math32.Abs(dy) {
		dy = 0
	} else {
		dx = 0
	}
	del := OrbitFactor * dist
	oc.Rig.Orbit(-dx*del, -dy*del)
	return true
}

func (oc *OrbitCamera) EndCameraControl(in *input.Snapshot) {}
