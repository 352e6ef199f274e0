// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capture implements exclusive ownership of input channels
// by interactive behaviors. Each frame the [Arbiter] updates active
// captures, arbitrates new capture requests by priority, and the
// [HoverCoordinator] sends hover updates on channels that remain free.
//
// Everything in this package runs on the single input thread.
// A [Guard] is held for the duration of every capture callback, and
// structural operations (registry mutation, forced termination,
// pushing or popping UI layers) fail with [ErrReentrant] while it is held.
package capture

import (
	"fmt"

	"cogentcore.org/xrshell/input"
)

// Side is the side of a spatial device that a capture requests.
type Side int32

const (
	// Left is the left hand spatial controller.
	Left Side = iota

	// Right is the right hand spatial controller.
	Right

	// Both is a joint capture of both spatial controllers.
	Both

	// Any is either side. It is arbitrated as [Both] on spatial
	// devices, and on single-channel devices it is the implicit side
	// passed to [Behavior.BeginCapture].
	Any
)

var sideNames = [...]string{"Left", "Right", "Both", "Any"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int32(s))
	}
	return sideNames[s]
}

// Channel is one of the four independent input channels.
// Each holds at most one active [Capture].
type Channel int32

const (
	MouseOrGamepad Channel = iota
	Touch
	SpatialLeft
	SpatialRight

	// NumChannels is the number of channels.
	NumChannels
)

var channelNames = [...]string{"MouseOrGamepad", "Touch", "SpatialLeft", "SpatialRight"}

func (ch Channel) String() string {
	if ch < 0 || ch >= NumChannels {
		return fmt.Sprintf("Channel(%d)", int32(ch))
	}
	return channelNames[ch]
}

// ModeChannels returns the channels that the given routing mode owns.
func ModeChannels(mode input.Modes) []Channel {
	switch mode {
	case input.SpatialMode:
		return []Channel{SpatialLeft, SpatialRight}
	case input.TouchMode:
		return []Channel{Touch}
	default:
		return []Channel{MouseOrGamepad}
	}
}

// RequestState is the state returned by a behavior from
// its capture lifecycle calls.
type RequestState int32

const (
	// Ignore means the behavior does not want to, or did not, start a capture.
	Ignore RequestState = iota

	// Begin means the behavior wants to start, or has started, a capture.
	Begin

	// Continue means an active capture continues.
	Continue

	// End means an active capture has finished.
	End
)

var requestStateNames = [...]string{"Ignore", "Begin", "Continue", "End"}

func (s RequestState) String() string {
	if s < 0 || int(s) >= len(requestStateNames) {
		return fmt.Sprintf("RequestState(%d)", int32(s))
	}
	return requestStateNames[s]
}

// Request is a request to start capturing, produced fresh every frame by
// [Behavior.WantsCapture]. The zero value has state [Ignore].
type Request struct {
	Behavior Behavior
	Side     Side

	// Priority orders competing requests: lower values win.
	Priority int32

	State RequestState
}

// Want returns a [Begin] request for the given behavior and side,
// at the priority of the behavior.
func Want(b Behavior, side Side) Request {
	return Request{Behavior: b, Side: side, Priority: b.Priority(), State: Begin}
}

// Capture is the live record of an in-progress capture. It is owned by
// the channel or channels it occupies.
type Capture struct {
	Behavior Behavior
	Side     Side

	// Data is arbitrary state owned by the behavior.
	Data any

	State RequestState
}

// Begun returns a [Begin] capture for the given behavior, side and data,
// to be returned from [Behavior.BeginCapture].
func Begun(b Behavior, side Side, data any) Capture {
	return Capture{Behavior: b, Side: side, Data: data, State: Begin}
}

// Declined is the capture returned from [Behavior.BeginCapture]
// when the behavior does not start capturing after all.
var Declined = Capture{State: Ignore}

// Identifier returns the capture identifier of the behavior, for diagnostics.
func (c *Capture) Identifier() string {
	if c == nil || c.Behavior == nil {
		return "<none>"
	}
	return c.Behavior.CaptureIdentifier()
}
