// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell ties the capture engine to its collaborators: the tool
// manager, the cockpit stack and the scene selection each contribute a
// group of behaviors to the shell's registry, and the [Router] runs
// the per-frame input loop.
package shell

import (
	"log/slog"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/cockpit"
	"cogentcore.org/xrshell/events"
	"cogentcore.org/xrshell/tools"
)

// Selectable is anything that contributes behaviors while it is selected,
// such as a scene object with gizmo handles.
type Selectable interface {
	InputBehaviors() *capture.BehaviorRegistry
}

// Context owns the capture state of the shell. All of its structures
// share one [capture.Guard], so none of them can be changed from inside
// a capture callback; such changes go through [Context.RunNextFrame].
type Context struct {
	Guard     *capture.Guard
	Behaviors *capture.BehaviorRegistry
	Overrides *capture.OverrideRegistry
	Hover     *capture.HoverCoordinator
	Arbiter   *capture.Arbiter
	Tools     *tools.Manager
	Cockpits  *cockpit.Stack

	nextFrame events.Queue[func()]

	tool      link[capture.Behavior]
	cockpit   link[capture.Behavior]
	overrides link[capture.Overrider]
	selection link[capture.Behavior]
	selected  Selectable
}

// NewContext returns a new context with empty registries, no active tool,
// an empty cockpit stack and no selection.
func NewContext() *Context {
	c := &Context{Guard: &capture.Guard{}}
	c.nextFrame.Init()
	c.Behaviors = capture.NewRegistry[capture.Behavior]("behaviors", c.Guard)
	c.Overrides = capture.NewRegistry[capture.Overrider]("overrides", c.Guard)
	c.Hover = capture.NewHoverCoordinator(c.Behaviors, c.Guard)
	c.Arbiter = capture.NewArbiter(c.Behaviors, c.Hover, c.Guard)
	c.Tools = tools.NewManager(c.Guard)
	c.Cockpits = cockpit.NewStack(c.Guard)

	c.tool = link[capture.Behavior]{parent: c.Behaviors, group: capture.GroupActiveTool}
	c.cockpit = link[capture.Behavior]{parent: c.Behaviors, group: capture.GroupActiveCockpit}
	c.overrides = link[capture.Overrider]{parent: c.Overrides, group: capture.GroupCockpitOverride}
	c.selection = link[capture.Behavior]{parent: c.Behaviors, group: capture.GroupSelectedObject}

	c.Tools.OnActivationChanged.Add(func(a tools.Activation) {
		if a.Active {
			errors.Log(c.tool.set(a.Tool.InputBehaviors()))
		} else {
			errors.Log(c.tool.set(nil))
		}
	})
	c.Cockpits.OnActiveChanged.Add(func(ch cockpit.Change) {
		if ch.Current == nil {
			errors.Log(c.cockpit.set(nil))
			errors.Log(c.overrides.set(nil))
			return
		}
		errors.Log(c.cockpit.set(ch.Current.InputBehaviors))
		errors.Log(c.overrides.set(ch.Current.OverrideBehaviors))
	})
	c.Arbiter.OnTransition.Add(c.singleClick)
	return c
}

// AddBehaviors adds behaviors that belong to the shell itself.
func (c *Context) AddBehaviors(bs ...capture.Behavior) error {
	return c.Behaviors.Add(capture.GroupShell, bs...)
}

// RunNextFrame schedules fun to run at the start of the next frame, before
// the input snapshot is built. It is safe to call from any goroutine and
// from inside capture callbacks, where structural changes are rejected.
func (c *Context) RunNextFrame(fun func()) {
	c.nextFrame.Send(fun)
}

// runDeferred runs the actions scheduled before this frame.
// Actions scheduled while they run wait for the next frame.
func (c *Context) runDeferred() int {
	return c.nextFrame.Drain(func(fun func()) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("next frame action panicked", "panic", r)
			}
		}()
		fun()
	})
}

// Selection returns the selected object, or nil.
func (c *Context) Selection() Selectable {
	return c.selected
}

// SetSelection selects the given object, whose behaviors replace those of
// the previous selection in the [capture.GroupSelectedObject] group.
// Captures held by behaviors of the previous selection are force-ended.
// A nil object clears the selection.
func (c *Context) SetSelection(s Selectable) error {
	if err := c.Guard.Check("SetSelection"); err != nil {
		return err
	}
	c.selected = s
	if s == nil {
		return c.selection.set(nil)
	}
	return c.selection.set(s.InputBehaviors())
}

// singleClick schedules the deactivation of the active single-click
// tool once a capture of one of its behaviors ends normally.
func (c *Context) singleClick(tr capture.Transition) {
	if tr.Kind != capture.Ended {
		return
	}
	t := c.Tools.Active()
	if t == nil || t.Kind() != tools.SingleClick || !t.InputBehaviors().Contains(tr.Capture.Behavior) {
		return
	}
	c.RunNextFrame(func() {
		if c.Tools.Active() == t {
			errors.Log(c.Tools.Deactivate())
		}
	})
}

// link keeps a group of a parent registry equal to the members of a
// child registry, following changes of the child. The child is locked by
// the parent's guard, so that it cannot change under a running callback
// while the parent group cannot follow.
type link[B comparable] struct {
	parent *capture.Registry[B]
	group  string
	child  *capture.Registry[B]
	id     events.ListenerID
}

// set follows the given child registry, which may be nil.
func (l *link[B]) set(child *capture.Registry[B]) error {
	if l.child != nil {
		l.child.OnSetChanged.Remove(l.id)
	}
	l.child = child
	if child == nil {
		return l.parent.SyncGroup(l.group, nil)
	}
	child.SetGuard(l.parent.Guard())
	l.id = child.OnSetChanged.Add(func(r *capture.Registry[B]) {
		errors.Log(l.parent.SyncGroup(l.group, r.Members()))
	})
	return l.parent.SyncGroup(l.group, child.Members())
}
