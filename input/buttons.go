// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"
	"strings"
)

// Button is the state of a single button in one frame.
// A [Source] only sets Down; the edges are computed by [Tracker].
type Button struct {
	// Down is whether the button is held down.
	Down bool

	// Pressed is whether the button went down this frame.
	Pressed bool

	// Released is whether the button went up this frame.
	Released bool
}

// step sets the edges of b relative to the previous state.
func (b *Button) step(prev Button) {
	b.Pressed = b.Down && !prev.Down
	b.Released = !b.Down && prev.Down
}

// Modifiers is a bit set of held keyboard modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Meta
)

// Has returns whether all of the given modifiers are held.
func (m Modifiers) Has(mods Modifiers) bool {
	return m&mods == mods
}

// HasAny returns whether any of the given modifiers is held.
func (m Modifiers) HasAny(mods Modifiers) bool {
	return m&mods != 0
}

// ParseModifiers parses modifier names: shift, control (ctrl),
// alt (option) and meta (command, cmd), case insensitively.
func ParseModifiers(names ...string) (Modifiers, error) {
	var m Modifiers
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "shift":
			m |= Shift
		case "control", "ctrl":
			m |= Control
		case "alt", "option":
			m |= Alt
		case "meta", "command", "cmd":
			m |= Meta
		default:
			return m, fmt.Errorf("input: unknown modifier %q", n)
		}
	}
	return m, nil
}
