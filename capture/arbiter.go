// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"cmp"
	"log/slog"
	"slices"

	"cogentcore.org/xrshell/events"
	"cogentcore.org/xrshell/input"
)

// TransitionKinds are the kinds of capture [Transition].
type TransitionKinds int32

const (
	// Began is a capture that was installed after BeginCapture returned Begin.
	Began TransitionKinds = iota

	// Ended is a capture that was cleared after UpdateCapture returned End.
	Ended

	// ForceEnded is a capture that was cleared by forced termination.
	ForceEnded
)

var transitionNames = [...]string{"Began", "Ended", "ForceEnded"}

func (k TransitionKinds) String() string {
	if k < 0 || int(k) >= len(transitionNames) {
		return "TransitionKinds(?)"
	}
	return transitionNames[k]
}

// Transition describes a change of a channel's capture. A joint capture
// on both spatial channels produces a single transition on [SpatialLeft].
type Transition struct {
	Kind    TransitionKinds
	Channel Channel
	Capture *Capture
}

// Stats counts capture transitions and faults.
type Stats struct {
	Begins     int
	Declines   int
	Ends       int
	ForcedEnds int
	Faults     int
	Conflicts  int
}

// Arbiter is the capture state machine. It holds the four channel slots,
// decides which behavior may begin a capture, updates active captures,
// and terminates them when they end or are forced to.
type Arbiter struct {
	// Strict makes faults in UpdateCapture on the [MouseOrGamepad] channel
	// propagate as a panic of [*CallbackFault], for debugging.
	// All other faults are always logged and contained.
	Strict bool

	// OnTransition is called after every capture transition,
	// once the guard has been released.
	OnTransition events.Listeners[Transition]

	registry *BehaviorRegistry
	hover    *HoverCoordinator
	guard    *Guard
	channels [NumChannels]*Capture
	last     *input.Snapshot
	stats    Stats
}

// NewArbiter returns a new arbiter over the given registry, locked by the
// given guard. Hover on a channel is ended through the given coordinator
// before a capture begins on it; it may be nil. The arbiter force-ends the
// captures of behaviors before they are removed from the registry.
func NewArbiter(registry *BehaviorRegistry, hover *HoverCoordinator, guard *Guard) *Arbiter {
	a := &Arbiter{registry: registry, hover: hover, guard: guard}
	registry.BeforeRemove.Add(func(removed []Behavior) {
		a.forceEndBehaviors(removed)
	})
	return a
}

// Capture returns the capture on the given channel, or nil.
func (a *Arbiter) Capture(ch Channel) *Capture {
	return a.channels[ch]
}

// Captured returns whether the given channel holds a capture.
func (a *Arbiter) Captured(ch Channel) bool {
	return a.channels[ch] != nil
}

// Channels returns a copy of the four channel slots.
func (a *Arbiter) Channels() [NumChannels]*Capture {
	return a.channels
}

// Stats returns the transition counts so far.
func (a *Arbiter) Stats() Stats {
	return a.stats
}

// Update calls UpdateCapture on the active captures of the channels that
// the snapshot's mode owns, and clears the channels whose capture ends.
// A joint capture on both spatial channels is updated once, and both
// channels are cleared together.
func (a *Arbiter) Update(in *input.Snapshot) error {
	if err := a.guard.Check("Arbiter.Update"); err != nil {
		return err
	}
	a.last = in
	var ended []Transition
	for _, ch := range ModeChannels(in.Mode) {
		c := a.channels[ch]
		if c == nil {
			continue
		}
		if ch == SpatialRight && c == a.channels[SpatialLeft] {
			continue // joint capture already updated with the left channel
		}
		if a.update(in, ch, c) != End {
			continue
		}
		a.clear(ch, c)
		a.stats.Ends++
		slog.Debug("capture end", "channel", ch, "behavior", c.Identifier(), "side", c.Side)
		ended = append(ended, Transition{Kind: Ended, Channel: ch, Capture: c})
	}
	for _, tr := range ended {
		a.OnTransition.Call(tr)
	}
	return nil
}

func (a *Arbiter) update(in *input.Snapshot, ch Channel, c *Capture) (state RequestState) {
	defer a.guard.Enter("UpdateCapture")()
	defer func() {
		if r := recover(); r != nil {
			f := newFault(c.Identifier(), "UpdateCapture", ch, r)
			if a.Strict && ch == MouseOrGamepad {
				panic(f)
			}
			a.stats.Faults++
			logFault(f)
			state = Continue
		}
	}()
	state = c.Behavior.UpdateCapture(in, c)
	switch state {
	case Continue, End:
	default:
		slog.Warn("UpdateCapture returned an illegal state, continuing", "behavior", c.Identifier(), "state", state)
		state = Continue
	}
	c.State = state
	return state
}

// Arbitrate gives the free channels of the snapshot's mode to the
// highest priority behaviors that want them. It does nothing for
// channels that are already captured.
func (a *Arbiter) Arbitrate(in *input.Snapshot) error {
	if err := a.guard.Check("Arbiter.Arbitrate"); err != nil {
		return err
	}
	a.last = in
	var begun []Transition
	if in.Mode == input.SpatialMode {
		begun = a.arbitrateSpatial(in)
	} else {
		begun = a.arbitrateSingle(in, ModeChannels(in.Mode)[0])
	}
	for _, tr := range begun {
		a.OnTransition.Call(tr)
	}
	return nil
}

// arbitrateSingle arbitrates a single-channel device, on which every
// request side maps onto the one channel.
func (a *Arbiter) arbitrateSingle(in *input.Snapshot, ch Channel) []Transition {
	if a.channels[ch] != nil {
		return nil
	}
	for _, req := range a.candidates(in, ch) {
		a.endHover(in, ch)
		c, ok := a.begin(in, ch, req, Any)
		if !ok {
			continue
		}
		a.channels[ch] = c
		return []Transition{a.began(ch, c)}
	}
	return nil
}

// arbitrateSpatial arbitrates the left and right spatial channels.
// Several requests can win in one pass as long as their sides do not
// overlap, and [Any] is arbitrated as [Both].
func (a *Arbiter) arbitrateSpatial(in *input.Snapshot) []Transition {
	held := [2]bool{a.channels[SpatialLeft] != nil, a.channels[SpatialRight] != nil}
	if held[0] && held[1] {
		return nil
	}
	claimed := held
	var begun []Transition
	for _, req := range a.candidates(in, SpatialLeft) {
		side := req.Side
		if side == Any {
			side = Both
		}
		needs := sideChannels(side)
		conflict := false
		for _, ch := range needs {
			i := ch - SpatialLeft
			if held[i] {
				a.stats.Conflicts++
				slog.Warn("capture request for a side that is already held, ignoring", "behavior", req.Behavior.CaptureIdentifier(), "side", req.Side, "holder", a.channels[ch].Identifier())
			}
			if claimed[i] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for _, ch := range needs {
			a.endHover(in, ch)
		}
		c, ok := a.begin(in, needs[0], req, side)
		if !ok {
			continue
		}
		for _, ch := range needs {
			a.channels[ch] = c
			claimed[ch-SpatialLeft] = true
		}
		begun = append(begun, a.began(needs[0], c))
		if claimed[0] && claimed[1] {
			break
		}
	}
	return begun
}

func sideChannels(side Side) []Channel {
	switch side {
	case Left:
		return []Channel{SpatialLeft}
	case Right:
		return []Channel{SpatialRight}
	default:
		return []Channel{SpatialLeft, SpatialRight}
	}
}

func (a *Arbiter) endHover(in *input.Snapshot, ch Channel) {
	if a.hover != nil {
		a.hover.terminate(in, ch)
	}
}

func (a *Arbiter) began(ch Channel, c *Capture) Transition {
	a.stats.Begins++
	slog.Debug("capture begin", "channel", ch, "behavior", c.Identifier(), "side", c.Side)
	return Transition{Kind: Began, Channel: ch, Capture: c}
}

// candidates returns the [Begin] requests of all registry members,
// sorted by ascending priority, keeping registration order for ties.
func (a *Arbiter) candidates(in *input.Snapshot, ch Channel) []Request {
	var reqs []Request
	for _, b := range a.registry.Members() {
		req, ok := a.wants(in, ch, b)
		if !ok {
			continue
		}
		reqs = append(reqs, req)
	}
	slices.SortStableFunc(reqs, func(x, y Request) int {
		return cmp.Compare(x.Priority, y.Priority)
	})
	return reqs
}

func (a *Arbiter) wants(in *input.Snapshot, ch Channel, b Behavior) (req Request, ok bool) {
	defer a.guard.Enter("WantsCapture")()
	defer func() {
		if r := recover(); r != nil {
			a.stats.Faults++
			logFault(newFault(b.CaptureIdentifier(), "WantsCapture", ch, r))
			ok = false
		}
	}()
	req = b.WantsCapture(in)
	if req.State != Begin {
		return req, false
	}
	req.Behavior = b
	return req, true
}

// begin calls BeginCapture and returns the capture to install, or false
// if the behavior declined or faulted.
func (a *Arbiter) begin(in *input.Snapshot, ch Channel, req Request, side Side) (capt *Capture, ok bool) {
	defer a.guard.Enter("BeginCapture")()
	defer func() {
		if r := recover(); r != nil {
			a.stats.Faults++
			logFault(newFault(req.Behavior.CaptureIdentifier(), "BeginCapture", ch, r))
			capt, ok = nil, false
		}
	}()
	c := req.Behavior.BeginCapture(in, side)
	if c.State != Begin {
		a.stats.Declines++
		slog.Debug("capture declined", "channel", ch, "behavior", req.Behavior.CaptureIdentifier())
		return nil, false
	}
	c.Behavior = req.Behavior
	if in.Mode == input.SpatialMode {
		c.Side = side
	}
	return &c, true
}

// clear empties the slot of ch and of its mirror if it holds the same capture.
func (a *Arbiter) clear(ch Channel, c *Capture) {
	a.channels[ch] = nil
	for _, m := range [2]Channel{SpatialLeft, SpatialRight} {
		if a.channels[m] == c {
			a.channels[m] = nil
		}
	}
}

// ForceEnd terminates the capture on the given channel, calling
// ForceEndCapture on its behavior. A joint spatial capture is cleared
// from both channels. It does nothing if the channel is free.
func (a *Arbiter) ForceEnd(ch Channel) error {
	if err := a.guard.Check("ForceEnd"); err != nil {
		return err
	}
	a.forceEnd(ch)
	return nil
}

// ForceEndAll terminates every active capture on every channel.
func (a *Arbiter) ForceEndAll() error {
	if err := a.guard.Check("ForceEndAll"); err != nil {
		return err
	}
	for ch := range NumChannels {
		a.forceEnd(ch)
	}
	return nil
}

func (a *Arbiter) forceEndBehaviors(behaviors []Behavior) {
	for ch := range NumChannels {
		if c := a.channels[ch]; c != nil && slices.Contains(behaviors, c.Behavior) {
			a.forceEnd(ch)
		}
	}
}

func (a *Arbiter) forceEnd(ch Channel) {
	c := a.channels[ch]
	if c == nil {
		return
	}
	in := a.last
	if in == nil {
		in = input.Empty
	}
	a.callForceEnd(in, ch, c)
	a.clear(ch, c)
	a.stats.ForcedEnds++
	slog.Debug("capture force end", "channel", ch, "behavior", c.Identifier(), "side", c.Side)
	a.OnTransition.Call(Transition{Kind: ForceEnded, Channel: ch, Capture: c})
}

func (a *Arbiter) callForceEnd(in *input.Snapshot, ch Channel, c *Capture) {
	defer a.guard.Enter("ForceEndCapture")()
	defer func() {
		if r := recover(); r != nil {
			a.stats.Faults++
			logFault(newFault(c.Identifier(), "ForceEndCapture", ch, r))
		}
	}()
	c.Behavior.ForceEndCapture(in, c)
	c.State = End
}
