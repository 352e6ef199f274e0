// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/cockpit"
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/math32"
	"cogentcore.org/xrshell/shell"
	"cogentcore.org/xrshell/tools"
)

// button is a behavior that captures a press inside its box and
// clicks when the press is released inside the box. In spatial mode,
// the box is a thin slab at z = 0 hit by the controller rays.
type button struct {
	Name     string
	Box      math32.Box2
	priority int32

	// OnClick is called from inside UpdateCapture.
	OnClick func(b *button)

	Pressed bool
	Hovered [capture.NumChannels]bool
}

func (b *button) Priority() int32           { return b.priority }
func (b *button) CaptureIdentifier() string { return "button:" + b.Name }

// channel returns the channel that a capture on the given side occupies in the given mode.
func channel(mode input.Modes, side capture.Side) capture.Channel {
	switch mode {
	case input.TouchMode:
		return capture.Touch
	case input.SpatialMode:
		if side == capture.Right {
			return capture.SpatialRight
		}
		return capture.SpatialLeft
	}
	return capture.MouseOrGamepad
}

func (b *button) hit(in *input.Snapshot, ch capture.Channel) bool {
	switch ch {
	case capture.Touch:
		return in.Touch.Active() && b.Box.ContainsPoint(in.Touch.Position)
	case capture.SpatialLeft:
		return b.rayHit(in.Left)
	case capture.SpatialRight:
		return b.rayHit(in.Right)
	}
	return b.Box.ContainsPoint(in.Mouse.Position)
}

func (b *button) rayHit(sp input.Spatial) bool {
	if !sp.Tracked || !sp.Ray.IsValid() {
		return false
	}
	slab := math32.B3(b.Box.Min.X, b.Box.Min.Y, -0.5, b.Box.Max.X, b.Box.Max.Y, 0.5)
	_, ok := sp.Ray.IntersectBox(slab)
	return ok
}

func (b *button) WantsCapture(in *input.Snapshot) capture.Request {
	switch in.Mode {
	case input.TouchMode:
		if in.Touch.Began && b.hit(in, capture.Touch) {
			return capture.Want(b, capture.Any)
		}
	case input.SpatialMode:
		if in.Left.Trigger.Pressed && b.hit(in, capture.SpatialLeft) {
			return capture.Want(b, capture.Left)
		}
		if in.Right.Trigger.Pressed && b.hit(in, capture.SpatialRight) {
			return capture.Want(b, capture.Right)
		}
	default:
		if in.Mouse.Left.Pressed && b.hit(in, capture.MouseOrGamepad) {
			return capture.Want(b, capture.Any)
		}
	}
	return capture.Request{}
}

func (b *button) BeginCapture(in *input.Snapshot, side capture.Side) capture.Capture {
	b.Pressed = true
	return capture.Begun(b, side, nil)
}

func (b *button) UpdateCapture(in *input.Snapshot, c *capture.Capture) capture.RequestState {
	ch := channel(in.Mode, c.Side)
	var down bool
	switch ch {
	case capture.Touch:
		down = in.Touch.Active()
	case capture.SpatialLeft:
		down = in.Left.Trigger.Down
	case capture.SpatialRight:
		down = in.Right.Trigger.Down
	default:
		down = in.Mouse.Left.Down
	}
	if down {
		return capture.Continue
	}
	b.Pressed = false
	// a released touch has no position, so it clicks where it was last seen
	if (ch == capture.Touch || b.hit(in, ch)) && b.OnClick != nil {
		b.OnClick(b)
	}
	return capture.End
}

func (b *button) ForceEndCapture(in *input.Snapshot, c *capture.Capture) {
	b.Pressed = false
}

func (b *button) EnableHover() bool { return true }

func (b *button) WantsHover(in *input.Snapshot, ch capture.Channel) bool {
	return b.hit(in, ch)
}

func (b *button) UpdateHover(in *input.Snapshot, ch capture.Channel) { b.Hovered[ch] = true }
func (b *button) EndHover(in *input.Snapshot, ch capture.Channel)    { b.Hovered[ch] = false }

// scaler is a two-handed behavior that scales while both grips are held.
type scaler struct {
	// Scale is the current scale factor.
	Scale float32

	// OnScale is called with the scale factor when scaling ends.
	OnScale func(scale float32)

	start, base float32
}

func (s *scaler) Priority() int32           { return 10 }
func (s *scaler) CaptureIdentifier() string { return "scaler" }

func (s *scaler) WantsCapture(in *input.Snapshot) capture.Request {
	if in.Mode != input.SpatialMode || !in.Left.Grip.Down || !in.Right.Grip.Down {
		return capture.Request{}
	}
	if !in.Left.Grip.Pressed && !in.Right.Grip.Pressed {
		return capture.Request{}
	}
	return capture.Want(s, capture.Both)
}

func (s *scaler) BeginCapture(in *input.Snapshot, side capture.Side) capture.Capture {
	d := in.Left.Ray.Origin.Sub(in.Right.Ray.Origin).Length()
	if d == 0 {
		return capture.Declined
	}
	if s.Scale == 0 {
		s.Scale = 1
	}
	s.start, s.base = d, s.Scale
	return capture.Begun(s, side, nil)
}

func (s *scaler) UpdateCapture(in *input.Snapshot, c *capture.Capture) capture.RequestState {
	if !in.Left.Grip.Down || !in.Right.Grip.Down {
		if s.OnScale != nil {
			s.OnScale(s.Scale)
		}
		return capture.End
	}
	d := in.Left.Ray.Origin.Sub(in.Right.Ray.Origin).Length()
	s.Scale = s.base * d / s.start
	return capture.Continue
}

func (s *scaler) ForceEndCapture(in *input.Snapshot, c *capture.Capture) {
	s.Scale = s.base
}

// demo is the demo scene: a hud cockpit with buttons, a dialog cockpit
// opened from the hud, and an active scale tool.
type demo struct {
	ctx    *shell.Context
	hud    *cockpit.Cockpit
	dialog *cockpit.Cockpit
	scaler *scaler
	tool   *tools.Base
	logf   func(format string, args ...any)
}

func newDemo(ctx *shell.Context, logf func(format string, args ...any)) (*demo, error) {
	d := &demo{ctx: ctx, logf: logf}
	d.hud = cockpit.New("hud")
	d.dialog = cockpit.New("dialog")

	clicked := func(b *button) { d.logf("click %s", b.Name) }
	ok := &button{Name: "ok", Box: math32.B2(2, 2, 12, 4), OnClick: clicked}
	cancel := &button{Name: "cancel", Box: math32.B2(14, 2, 24, 4), OnClick: clicked}
	menu := &button{Name: "menu", Box: math32.B2(26, 2, 36, 4), OnClick: func(b *button) {
		d.logf("click %s", b.Name)
		ctx.RunNextFrame(func() { errors.Log(ctx.Cockpits.Push(d.dialog)) })
	}}
	// the backdrop is under the other buttons, so it comes last in priority
	backdrop := &button{Name: "backdrop", Box: math32.B2(0, 0, 80, 24), priority: 100}
	closer := &button{Name: "close", Box: math32.B2(10, 8, 30, 12), OnClick: func(b *button) {
		d.logf("click %s", b.Name)
		ctx.RunNextFrame(func() { errors.Log1(ctx.Cockpits.Pop()) })
	}}

	if err := d.hud.InputBehaviors.Add("", ok, cancel, menu, backdrop); err != nil {
		return nil, err
	}
	if err := d.dialog.InputBehaviors.Add("", closer); err != nil {
		return nil, err
	}
	if err := ctx.Cockpits.Push(d.hud); err != nil {
		return nil, err
	}

	d.scaler = &scaler{Scale: 1, OnScale: func(scale float32) { d.logf("scale %.2f", scale) }}
	d.tool = tools.NewBase("scale", tools.Generic)
	if err := d.tool.Behaviors.Add("", d.scaler); err != nil {
		return nil, err
	}
	if err := ctx.Tools.Activate(d.tool); err != nil {
		return nil, err
	}
	return d, nil
}

// buttons returns the buttons of the active cockpit.
func (d *demo) buttons() []*button {
	c := d.ctx.Cockpits.Active()
	if c == nil {
		return nil
	}
	var bs []*button
	for _, b := range c.InputBehaviors.Members() {
		if bt, ok := b.(*button); ok {
			bs = append(bs, bt)
		}
	}
	return bs
}
