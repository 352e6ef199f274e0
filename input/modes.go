// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"
	"strings"
)

// Modes are the routing modes of the shell. Exactly one mode
// is active in any frame, chosen from the available [Devices].
type Modes int32

const (
	// MouseOrGamepadMode routes the mouse and gamepad to the
	// single mouse-or-gamepad capture channel. It is the fallback mode.
	MouseOrGamepadMode Modes = iota

	// TouchMode routes the primary touch to the touch channel.
	TouchMode

	// SpatialMode routes the two hand-tracked controllers to
	// independent left and right channels.
	SpatialMode
)

var modeNames = [...]string{"mouse", "touch", "spatial"}

func (m Modes) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Modes(%d)", int32(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name as returned by [Modes.String].
func ParseMode(s string) (Modes, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, s) {
			return Modes(i), nil
		}
	}
	return MouseOrGamepadMode, fmt.Errorf("input: unknown mode %q", s)
}

// Devices reports which kinds of input devices are available.
type Devices struct {
	// Spatial is whether hand-tracked spatial controllers are tracked.
	Spatial bool

	// Touch is whether a touch screen is present.
	Touch bool

	// Gamepad is whether a gamepad is connected.
	Gamepad bool
}

// SelectMode returns the mode for the given devices: spatial tracking wins
// over touch, and touch wins over mouse-or-gamepad.
func SelectMode(d Devices) Modes {
	switch {
	case d.Spatial:
		return SpatialMode
	case d.Touch:
		return TouchMode
	default:
		return MouseOrGamepadMode
	}
}
