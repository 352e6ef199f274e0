// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"cogentcore.org/xrshell/input"
)

// Behavior is an element that can take exclusive ownership of an input
// channel. Behaviors are identified by equality, so implementations
// must be comparable; pointer types are typical.
type Behavior interface {
	// Priority orders competing requests: lower values win.
	Priority() int32

	// CaptureIdentifier is a human readable name used in diagnostics.
	CaptureIdentifier() string

	// WantsCapture returns a [Begin] request if the behavior wants to start
	// capturing. It must not modify any state.
	WantsCapture(in *input.Snapshot) Request

	// BeginCapture tries to start capturing on the given side. It returns
	// [Declined] if it does not start after all, which is not an error.
	BeginCapture(in *input.Snapshot, side Side) Capture

	// UpdateCapture is called once per frame while the capture is active,
	// and returns [Continue] or [End].
	UpdateCapture(in *input.Snapshot, c *Capture) RequestState

	// ForceEndCapture unconditionally terminates the capture.
	ForceEndCapture(in *input.Snapshot, c *Capture)
}

// Hoverer is implemented by behaviors that want hover updates
// on channels that are not captured.
type Hoverer interface {
	// EnableHover is whether the behavior currently takes part in hover.
	EnableHover() bool

	// WantsHover is the hit-test for the given channel. It must not modify any state.
	WantsHover(in *input.Snapshot, ch Channel) bool

	// UpdateHover is called every frame that the behavior is hovered on the channel.
	UpdateHover(in *input.Snapshot, ch Channel)

	// EndHover is called exactly once when the behavior stops being hovered on the channel.
	EndHover(in *input.Snapshot, ch Channel)
}

// Overrider is a non-capturing responder that receives every frame's input
// before arbitration, such as a global hotkey. Overriders never capture.
type Overrider interface {
	OverrideInput(in *input.Snapshot)
}

// BehaviorRegistry is the registry of capture-capable behaviors.
type BehaviorRegistry = Registry[Behavior]

// OverrideRegistry is the registry of override behaviors.
type OverrideRegistry = Registry[Overrider]

// Standard group names.
const (
	GroupActiveTool      = "active_tool"
	GroupActiveCockpit   = "active_cockpit"
	GroupCockpitOverride = "active_cockpit_override"
	GroupSelectedObject  = "active_so"
	GroupShell           = "shell"
)
