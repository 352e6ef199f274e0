// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/math32"
	"cogentcore.org/xrshell/settings"
	"cogentcore.org/xrshell/shell"
)

func newTermCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Drive the demo scene with the terminal mouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			// log output would corrupt the screen, so only the status line shows events
			s, err := opts.load(io.Discard)
			if err != nil {
				return err
			}
			t := newTerm(screen)
			return t.run(cmd.Context(), s, opts.settingsFile)
		},
	}
}

// termSource is an [input.Source] fed by terminal mouse events.
type termSource struct {
	st   input.State
	last math32.Vector2
}

func (ts *termSource) handle(ev *tcell.EventMouse) {
	x, y := ev.Position()
	m := &ts.st.Mouse
	m.Position = math32.Vec2(float32(x), float32(y))
	b := ev.Buttons()
	switch {
	case b&tcell.WheelUp != 0:
		m.Wheel--
		return
	case b&tcell.WheelDown != 0:
		m.Wheel++
		return
	}
	m.Left.Down = b&tcell.Button1 != 0
	m.Right.Down = b&tcell.Button2 != 0
	m.Middle.Down = b&tcell.Button3 != 0

	mods := ev.Modifiers()
	var im input.Modifiers
	if mods&tcell.ModShift != 0 {
		im |= input.Shift
	}
	if mods&tcell.ModCtrl != 0 {
		im |= input.Control
	}
	if mods&tcell.ModAlt != 0 {
		im |= input.Alt
	}
	if mods&tcell.ModMeta != 0 {
		im |= input.Meta
	}
	ts.st.Modifiers = im
}

func (ts *termSource) Poll() input.State {
	st := ts.st
	st.Mouse.Delta = st.Mouse.Position.Sub(ts.last)
	ts.last = st.Mouse.Position
	ts.st.Mouse.Wheel = 0
	return st
}

// termRig is a camera rig that only keeps its angles, for display.
type termRig struct {
	yaw, pitch float32
	panX, panY float32
}

func (r *termRig) Orbit(delX, delY float32) { r.yaw += delX; r.pitch += delY }
func (r *termRig) Pan(delX, delY float32)   { r.panX += delX; r.panY += delY }

type term struct {
	screen tcell.Screen
	source *termSource
	rig    *termRig
	router *shell.Router
	demo   *demo
	status string
}

func newTerm(screen tcell.Screen) *term {
	return &term{screen: screen, source: &termSource{}, rig: &termRig{}}
}

func (t *term) run(ctx context.Context, s *settings.Settings, settingsFile string) error {
	t.screen.EnableMouse()
	t.screen.EnableFocus()

	sctx := shell.NewContext()
	t.router = shell.NewRouter(sctx, t.source)
	t.router.Camera = &shell.OrbitCamera{Rig: t.rig}
	t.router.ApplySettings(s)
	var err error
	t.demo, err = newDemo(sctx, func(format string, args ...any) {
		t.status = fmt.Sprintf(format, args...)
	})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if settingsFile != "" {
		errors.Log(settings.Watch(ctx, settingsFile, func(s *settings.Settings) {
			sctx.RunNextFrame(func() { t.router.ApplySettings(s) })
		}))
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventMouse:
				t.source.handle(ev)
			case *tcell.EventFocus:
				if !ev.Focused {
					errors.Log(t.router.FocusLost())
					t.status = "focus lost"
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			errors.Log1(t.router.Frame())
			t.draw()
		}
	}
}

func (t *term) draw() {
	t.screen.Clear()
	// the backdrop is added last and drawn first
	bs := t.demo.buttons()
	slices.Reverse(bs)
	for _, b := range bs {
		style := tcell.StyleDefault
		switch {
		case b.Pressed:
			style = style.Reverse(true)
		case b.Hovered[capture.MouseOrGamepad]:
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		t.drawBox(b.Box, b.Name, style)
	}
	_, h := t.screen.Size()
	a := t.router.Context().Arbiter
	owner := "free"
	if c := a.Capture(capture.MouseOrGamepad); c != nil {
		owner = c.Identifier()
	}
	if t.router.InCameraControl() {
		owner = "camera"
	}
	st := t.router.Stats()
	line := fmt.Sprintf("mouse: %s | yaw %.2f pitch %.2f | begins %d ends %d forced %d | %s | q to quit",
		owner, t.rig.yaw, t.rig.pitch, st.Begins, st.Ends, st.ForcedEnds, t.status)
	t.drawText(0, h-1, line, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	t.screen.Show()
}

func (t *term) drawBox(box math32.Box2, label string, style tcell.Style) {
	x0, y0 := int(box.Min.X), int(box.Min.Y)
	x1, y1 := int(box.Max.X), int(box.Max.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				r = '+'
			case y == y0 || y == y1:
				r = '-'
			case x == x0 || x == x1:
				r = '|'
			}
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	t.drawText(x0+(x1-x0-len(label))/2+1, (y0+y1)/2, label, style)
}

func (t *term) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
