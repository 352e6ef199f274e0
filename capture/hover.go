// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"slices"

	"cogentcore.org/xrshell/input"
)

// HoverCoordinator sends hover updates to the [Hoverer] members of a
// registry on channels that are not captured, and tracks which members
// are hovered on each channel so that every hover ends exactly once.
type HoverCoordinator struct {
	registry *BehaviorRegistry
	guard    *Guard
	hovered  [NumChannels][]Behavior
	last     *input.Snapshot
}

// NewHoverCoordinator returns a new hover coordinator for the given registry.
// Hovers of members are ended before they are removed from the registry.
func NewHoverCoordinator(registry *BehaviorRegistry, guard *Guard) *HoverCoordinator {
	h := &HoverCoordinator{registry: registry, guard: guard}
	registry.BeforeRemove.Add(func(removed []Behavior) {
		in := h.last
		if in == nil {
			in = input.Empty
		}
		for ch := range NumChannels {
			h.endWhere(in, ch, func(b Behavior) bool { return slices.Contains(removed, b) })
		}
	})
	return h
}

// Hovered returns a copy of the behaviors hovered on the given channel.
func (h *HoverCoordinator) Hovered(ch Channel) []Behavior {
	return slices.Clone(h.hovered[ch])
}

// Update runs the hit-test of every hover-enabled member for the given
// channel, which must not be captured. Members that hit get UpdateHover;
// previously hovered members that no longer hit, or no longer enable
// hover, get EndHover and are dropped.
func (h *HoverCoordinator) Update(in *input.Snapshot, ch Channel) error {
	if err := h.guard.Check("HoverCoordinator.Update"); err != nil {
		return err
	}
	h.last = in
	for _, b := range h.registry.Members() {
		hv, ok := b.(Hoverer)
		if !ok {
			continue
		}
		tracked := slices.Contains(h.hovered[ch], b)
		if h.wants(in, ch, b, hv) {
			if !tracked {
				h.hovered[ch] = append(h.hovered[ch], b)
			}
			h.call(in, ch, b, "UpdateHover", hv.UpdateHover)
		} else if tracked {
			h.drop(ch, b)
			h.call(in, ch, b, "EndHover", hv.EndHover)
		}
	}
	return nil
}

// Terminate ends every hover on the given channels.
func (h *HoverCoordinator) Terminate(in *input.Snapshot, chs ...Channel) error {
	if err := h.guard.Check("HoverCoordinator.Terminate"); err != nil {
		return err
	}
	h.terminate(in, chs...)
	return nil
}

// TerminateAll ends every hover on every channel.
func (h *HoverCoordinator) TerminateAll(in *input.Snapshot) error {
	if err := h.guard.Check("HoverCoordinator.TerminateAll"); err != nil {
		return err
	}
	for ch := range NumChannels {
		h.terminate(in, ch)
	}
	return nil
}

func (h *HoverCoordinator) terminate(in *input.Snapshot, chs ...Channel) {
	for _, ch := range chs {
		h.endWhere(in, ch, func(Behavior) bool { return true })
	}
}

func (h *HoverCoordinator) endWhere(in *input.Snapshot, ch Channel, match func(Behavior) bool) {
	// dropped from tracking before EndHover, so that each ends exactly once
	var ending []Behavior
	h.hovered[ch] = slices.DeleteFunc(h.hovered[ch], func(b Behavior) bool {
		if match(b) {
			ending = append(ending, b)
			return true
		}
		return false
	})
	for _, b := range ending {
		h.call(in, ch, b, "EndHover", b.(Hoverer).EndHover)
	}
}

func (h *HoverCoordinator) drop(ch Channel, b Behavior) {
	h.hovered[ch] = slices.DeleteFunc(h.hovered[ch], func(o Behavior) bool { return o == b })
}

func (h *HoverCoordinator) wants(in *input.Snapshot, ch Channel, b Behavior, hv Hoverer) (hit bool) {
	defer h.guard.Enter("WantsHover")()
	defer func() {
		if r := recover(); r != nil {
			logFault(newFault(b.CaptureIdentifier(), "WantsHover", ch, r))
			hit = false
		}
	}()
	return hv.EnableHover() && hv.WantsHover(in, ch)
}

func (h *HoverCoordinator) call(in *input.Snapshot, ch Channel, b Behavior, name string, fun func(*input.Snapshot, Channel)) {
	defer h.guard.Enter(name)()
	defer func() {
		if r := recover(); r != nil {
			logFault(newFault(b.CaptureIdentifier(), name, ch, r))
		}
	}()
	fun(in, ch)
}
