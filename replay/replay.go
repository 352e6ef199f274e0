// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package replay reads scripted device input, so that the shell can be
// driven without real devices. A script starts with the header line
//
//	xrshell-replay 1.0.0
//
// followed by device lines that change the current device state, and
// frame lines that emit it:
//
//	devices touch spatial gamepad   # available devices; none means mouse only
//	mods shift alt                  # held modifiers
//	mouse 10 20 left                # position and held buttons
//	wheel -1                        # wheel change for the next frame
//	touch 1 100 200                 # touch count and position
//	left trigger ray 0 1 0 0 0 -1   # spatial controller buttons and ray
//	right untracked
//	gamepad 0.5 0 a                 # left stick and held buttons
//	frame 3                         # emit the state for 3 frames
//
// Words are split like a shell command line; # starts a comment.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mattn/go-shellwords"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/math32"
)

// Header is the first word of every script.
const Header = "xrshell-replay"

// SupportedVersions is the constraint that the version of a script must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrVersion is returned for a script with a missing or unsupported version.
var ErrVersion = errors.New("replay: unsupported version")

// MaxFrames is the largest number of frames a script may hold.
const MaxFrames = 1_000_000

// Script is a parsed replay script.
type Script struct {
	Version *semver.Version

	// Frames are the device states of the frames, in order.
	Frames []input.State
}

// Open parses the script in the given file.
func Open(filename string) (*Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sc, nil
}

// Parse parses a script.
func Parse(r io.Reader) (*Script, error) {
	p := &parser{}
	scan := bufio.NewScanner(r)
	ln := 0
	for scan.Scan() {
		ln++
		line := scan.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		words, err := shellwords.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", ln, err)
		}
		if len(words) == 0 {
			continue
		}
		if err := p.line(words); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", ln, err)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if p.script.Version == nil {
		return nil, fmt.Errorf("%w: missing %s header", ErrVersion, Header)
	}
	return &p.script, nil
}

type parser struct {
	script Script
	state  input.State
	wheel  float32

	// previous emitted positions, for deltas
	lastMouse math32.Vector2
	lastTouch math32.Vector2
	emitted   bool
	touching  bool
}

func (p *parser) line(words []string) error {
	cmd, args := words[0], words[1:]
	if p.script.Version == nil {
		if cmd != Header || len(args) != 1 {
			return fmt.Errorf("%w: script must start with %q", ErrVersion, Header+" <version>")
		}
		return p.header(args[0])
	}
	switch cmd {
	case "frame":
		return p.frame(args)
	case "devices":
		return p.devices(args)
	case "mods":
		m, err := input.ParseModifiers(args...)
		p.state.Modifiers = m
		return err
	case "mouse":
		return p.mouse(args)
	case "wheel":
		if len(args) != 1 {
			return fmt.Errorf("wheel needs 1 value")
		}
		return parseFloats(args, &p.wheel)
	case "touch":
		return p.touch(args)
	case "left":
		return p.spatial(&p.state.Left, args)
	case "right":
		return p.spatial(&p.state.Right, args)
	case "gamepad":
		return p.gamepad(args)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (p *parser) header(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrVersion, version, err)
	}
	c := errors.Must1(semver.NewConstraint(SupportedVersions))
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersion, v, SupportedVersions)
	}
	p.script.Version = v
	return nil
}

func (p *parser) frame(args []string) error {
	n := 1
	if len(args) > 1 {
		return fmt.Errorf("frame takes at most 1 count")
	}
	if len(args) == 1 {
		c, err := strconv.Atoi(args[0])
		if err != nil || c < 1 {
			return fmt.Errorf("invalid frame count %q", args[0])
		}
		n = c
	}
	if n > MaxFrames-len(p.script.Frames) {
		return fmt.Errorf("script exceeds %d frames", MaxFrames)
	}
	for range n {
		st := p.state
		st.Mouse.Wheel = p.wheel
		if p.emitted {
			st.Mouse.Delta = st.Mouse.Position.Sub(p.lastMouse)
		}
		if p.touching && st.Touch.Active() {
			st.Touch.Delta = st.Touch.Position.Sub(p.lastTouch)
		}
		p.lastMouse, p.lastTouch = st.Mouse.Position, st.Touch.Position
		p.emitted, p.touching = true, st.Touch.Active()
		p.script.Frames = append(p.script.Frames, st)
		p.wheel = 0
	}
	return nil
}

func (p *parser) devices(args []string) error {
	var d input.Devices
	for _, a := range args {
		switch a {
		case "mouse":
		case "touch":
			d.Touch = true
		case "spatial":
			d.Spatial = true
		case "gamepad":
			d.Gamepad = true
		default:
			return fmt.Errorf("unknown device %q", a)
		}
	}
	p.state.Devices = d
	p.state.Gamepad.Connected = d.Gamepad
	return nil
}

func (p *parser) mouse(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("mouse needs x and y")
	}
	m := &p.state.Mouse
	if err := parseFloats(args[:2], &m.Position.X, &m.Position.Y); err != nil {
		return err
	}
	m.Left, m.Middle, m.Right = input.Button{}, input.Button{}, input.Button{}
	for _, b := range args[2:] {
		switch b {
		case "left":
			m.Left.Down = true
		case "middle":
			m.Middle.Down = true
		case "right":
			m.Right.Down = true
		default:
			return fmt.Errorf("unknown mouse button %q", b)
		}
	}
	return nil
}

func (p *parser) touch(args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("touch needs a count and optionally x and y")
	}
	t := &p.state.Touch
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid touch count %q", args[0])
	}
	t.Count = n
	if len(args) == 3 {
		return parseFloats(args[1:], &t.Position.X, &t.Position.Y)
	}
	return nil
}

func (p *parser) spatial(sp *input.Spatial, args []string) error {
	sp.Tracked = true
	sp.Trigger, sp.Grip, sp.Primary, sp.Secondary = input.Button{}, input.Button{}, input.Button{}, input.Button{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "untracked":
			sp.Tracked = false
		case "trigger":
			sp.Trigger.Down = true
		case "grip":
			sp.Grip.Down = true
		case "primary":
			sp.Primary.Down = true
		case "secondary":
			sp.Secondary.Down = true
		case "ray":
			if i+6 >= len(args) {
				return fmt.Errorf("ray needs an origin and a direction")
			}
			var o, d math32.Vector3
			if err := parseFloats(args[i+1:i+7], &o.X, &o.Y, &o.Z, &d.X, &d.Y, &d.Z); err != nil {
				return err
			}
			sp.Ray = math32.NewRay(o, d)
			i += 6
		case "stick":
			if i+2 >= len(args) {
				return fmt.Errorf("stick needs x and y")
			}
			if err := parseFloats(args[i+1:i+3], &sp.Stick.X, &sp.Stick.Y); err != nil {
				return err
			}
			i += 2
		default:
			return fmt.Errorf("unknown spatial input %q", args[i])
		}
	}
	return nil
}

func (p *parser) gamepad(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("gamepad needs the left stick x and y")
	}
	g := &p.state.Gamepad
	if err := parseFloats(args[:2], &g.LeftStick.X, &g.LeftStick.Y); err != nil {
		return err
	}
	buttons := map[string]*input.Button{
		"a": &g.A, "b": &g.B, "x": &g.X, "y": &g.Y,
		"lb": &g.LeftShoulder, "rb": &g.RightShoulder, "start": &g.Start,
	}
	for _, b := range buttons {
		*b = input.Button{}
	}
	for _, a := range args[2:] {
		b, ok := buttons[a]
		if !ok {
			return fmt.Errorf("unknown gamepad button %q", a)
		}
		b.Down = true
	}
	return nil
}

func parseFloats(args []string, vs ...*float32) error {
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q", a)
		}
		*vs[i] = float32(f)
	}
	return nil
}

// Source is an [input.Source] that plays the frames of a script.
// After the last frame, it returns an idle state with the devices
// of the last frame.
type Source struct {
	script *Script
	next   int
}

// NewSource returns a new source playing the given script.
func NewSource(sc *Script) *Source {
	return &Source{script: sc}
}

// Poll returns the state of the next frame.
func (s *Source) Poll() input.State {
	if s.next < len(s.script.Frames) {
		st := s.script.Frames[s.next]
		s.next++
		return st
	}
	var idle input.State
	if n := len(s.script.Frames); n > 0 {
		idle.Devices = s.script.Frames[n-1].Devices
	}
	return idle
}

// Done returns whether every frame has been played.
func (s *Source) Done() bool {
	return s.next >= len(s.script.Frames)
}

// Len returns the number of frames in the script.
func (s *Source) Len() int {
	return len(s.script.Frames)
}
