// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cockpit implements the stack of UI layers (cockpits) of the shell.
// Only the top cockpit is active; its input behaviors are registered in the
// [capture.GroupActiveCockpit] group and its override behaviors in the
// [capture.GroupCockpitOverride] group.
package cockpit

import (
	"log/slog"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/events"
)

// ErrEmptyStack is returned when popping an empty stack.
var ErrEmptyStack = errors.New("cockpit: stack is empty")

// Cockpit is a UI layer that contributes behaviors while it is on top of the stack.
type Cockpit struct {
	Name string

	// InputBehaviors are capture-capable behaviors of the cockpit.
	InputBehaviors *capture.BehaviorRegistry

	// OverrideBehaviors receive every frame's input before arbitration.
	OverrideBehaviors *capture.OverrideRegistry
}

// New returns a new cockpit with empty registries.
func New(name string) *Cockpit {
	return &Cockpit{
		Name:              name,
		InputBehaviors:    capture.NewRegistry[capture.Behavior](name, nil),
		OverrideBehaviors: capture.NewRegistry[capture.Overrider](name+" overrides", nil),
	}
}

// Change is sent to [Stack.OnActiveChanged] listeners.
type Change struct {
	// Previous and Current are the active cockpits before and after; either may be nil.
	Previous, Current *Cockpit
}

// Stack is the stack of cockpits. Pushing and popping are rejected with
// [capture.ErrReentrant] while a capture callback is running.
type Stack struct {
	// OnActiveChanged is called after every push and pop.
	OnActiveChanged events.Listeners[Change]

	guard  *capture.Guard
	layers []*Cockpit
}

// NewStack returns a new empty stack locked by the given guard.
func NewStack(guard *capture.Guard) *Stack {
	return &Stack{guard: guard}
}

// Len returns the number of cockpits on the stack.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Active returns the top cockpit, or nil.
func (s *Stack) Active() *Cockpit {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// Push pushes the cockpit, making it active.
func (s *Stack) Push(c *Cockpit) error {
	if err := s.guard.Check("cockpit.Push"); err != nil {
		return err
	}
	prev := s.Active()
	s.layers = append(s.layers, c)
	slog.Info("cockpit push", "cockpit", c.Name, "depth", len(s.layers))
	s.OnActiveChanged.Call(Change{Previous: prev, Current: c})
	return nil
}

// Pop removes and returns the active cockpit; the one below it becomes active.
func (s *Stack) Pop() (*Cockpit, error) {
	if err := s.guard.Check("cockpit.Pop"); err != nil {
		return nil, err
	}
	if len(s.layers) == 0 {
		return nil, ErrEmptyStack
	}
	c := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	slog.Info("cockpit pop", "cockpit", c.Name, "depth", len(s.layers))
	s.OnActiveChanged.Call(Change{Previous: c, Current: s.Active()})
	return c, nil
}
