// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"testing"

	"cogentcore.org/xrshell/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMode(t *testing.T) {
	tests := []struct {
		devices Devices
		want    Modes
	}{
		{Devices{}, MouseOrGamepadMode},
		{Devices{Gamepad: true}, MouseOrGamepadMode},
		{Devices{Touch: true}, TouchMode},
		{Devices{Touch: true, Spatial: true}, SpatialMode},
		{Devices{Spatial: true}, SpatialMode},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, SelectMode(test.devices), "%+v", test.devices)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Spatial")
	require.NoError(t, err)
	assert.Equal(t, SpatialMode, m)
	assert.Equal(t, "touch", TouchMode.String())
	_, err = ParseMode("keyboard")
	assert.Error(t, err)
}

func TestTrackerEdges(t *testing.T) {
	var tr Tracker
	var st State

	st.Mouse.Left.Down = true
	sn := tr.Build(MouseOrGamepadMode, st, Captured{})
	assert.Equal(t, uint64(1), sn.Frame)
	assert.True(t, sn.Mouse.Left.Pressed)
	assert.False(t, sn.Mouse.Left.Released)

	sn = tr.Build(MouseOrGamepadMode, st, Captured{Mouse: true})
	assert.False(t, sn.Mouse.Left.Pressed)
	assert.True(t, sn.Mouse.Left.Down)
	assert.True(t, sn.MouseCaptureActive)

	st.Mouse.Left.Down = false
	sn = tr.Build(MouseOrGamepadMode, st, Captured{})
	assert.True(t, sn.Mouse.Left.Released)
	assert.Equal(t, uint64(3), tr.Frame())
}

func TestTrackerModeFiltering(t *testing.T) {
	var tr Tracker
	var st State
	st.Mouse.Left.Down = true
	st.Touch.Count = 1
	st.Right.Tracked = true
	st.Right.Trigger.Down = true

	sn := tr.Build(SpatialMode, st, Captured{})
	assert.True(t, sn.Right.Trigger.Pressed)
	assert.False(t, sn.Mouse.Left.Down)
	assert.Equal(t, 0, sn.Touch.Count)

	sn = tr.Build(TouchMode, st, Captured{})
	assert.Equal(t, 1, sn.Touch.Count)
	assert.False(t, sn.Touch.Began, "touch began in the previous frame")
	assert.False(t, sn.Right.Tracked)
}

func TestTouchEdges(t *testing.T) {
	var tr Tracker
	var st State
	st.Touch.Count = 1
	sn := tr.Build(TouchMode, st, Captured{})
	assert.True(t, sn.Touch.Began)
	st.Touch.Count = 0
	sn = tr.Build(TouchMode, st, Captured{})
	assert.True(t, sn.Touch.Ended)
	assert.False(t, sn.Touch.Active())
}

func TestDeadzone(t *testing.T) {
	tr := Tracker{Deadzone: 0.2}
	var st State
	st.Gamepad.LeftStick = math32.Vec2(0.1, 0.1)
	st.Gamepad.RightStick = math32.Vec2(1, 0)
	sn := tr.Build(MouseOrGamepadMode, st, Captured{})
	assert.Equal(t, math32.Vector2{}, sn.Gamepad.LeftStick)
	assert.InDelta(t, 1, sn.Gamepad.RightStick.X, 1e-6)

	st.Gamepad.RightStick = math32.Vec2(0.6, 0)
	sn = tr.Build(MouseOrGamepadMode, st, Captured{})
	assert.InDelta(t, 0.5, sn.Gamepad.RightStick.X, 1e-6)
}

func TestModifiers(t *testing.T) {
	m := Shift | Alt
	assert.True(t, m.Has(Shift))
	assert.False(t, m.Has(Shift|Control))
	assert.True(t, m.HasAny(Control|Alt))
}

func TestParseModifiers(t *testing.T) {
	m, err := ParseModifiers("Shift", " ctrl", "cmd")
	assert.NoError(t, err)
	assert.Equal(t, Shift|Control|Meta, m)
	_, err = ParseModifiers("hyper")
	assert.Error(t, err)
	m, err = ParseModifiers()
	assert.NoError(t, err)
	assert.Equal(t, Modifiers(0), m)
}
