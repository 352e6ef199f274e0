// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import "cogentcore.org/xrshell/math32"

// Mouse is the state of the mouse.
type Mouse struct {
	// Position is the cursor position in window pixels.
	Position math32.Vector2

	// Delta is the change in Position since the previous frame.
	Delta math32.Vector2

	// Wheel is the scroll wheel change this frame.
	Wheel float32

	// Ray is the world-space ray under the cursor.
	Ray math32.Ray

	Left, Middle, Right Button
}

// Gamepad is the state of a gamepad. Stick and trigger values are
// normalized to [-1, 1] and [0, 1].
type Gamepad struct {
	Connected bool

	LeftStick, RightStick     math32.Vector2
	LeftTrigger, RightTrigger float32

	A, B, X, Y                  Button
	LeftShoulder, RightShoulder Button
	Start                       Button

	// Ray is the world-space ray of the gamepad cursor.
	Ray math32.Ray
}

// Touch is the state of the primary touch.
type Touch struct {
	// Count is the number of active touches.
	Count int

	// Position is the primary touch position in window pixels.
	Position math32.Vector2

	// Delta is the change in Position since the previous frame.
	Delta math32.Vector2

	// Ray is the world-space ray under the primary touch.
	Ray math32.Ray

	// Began is whether the primary touch started this frame.
	Began bool

	// Ended is whether the primary touch ended this frame.
	Ended bool
}

// Active returns whether at least one touch is down.
func (t *Touch) Active() bool {
	return t.Count > 0
}

// Spatial is the state of a hand-tracked spatial controller.
type Spatial struct {
	// Tracked is whether the controller pose is valid.
	Tracked bool

	// Ray is the world-space pointing ray of the controller.
	Ray math32.Ray

	Trigger, Grip, Primary, Secondary Button

	Stick math32.Vector2
}

// State is the raw state of all devices for one frame,
// as produced by a [Source].
type State struct {
	Devices   Devices
	Modifiers Modifiers

	Mouse   Mouse
	Gamepad Gamepad
	Touch   Touch

	Left, Right Spatial
}

// Source is a device poller. Poll is called exactly once per frame,
// and the returned state is read-only thereafter.
type Source interface {
	Poll() State
}
