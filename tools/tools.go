// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tools manages the active tool of the shell. The behaviors
// of the active tool are registered in the [capture.GroupActiveTool] group.
package tools

import (
	"fmt"
	"log/slog"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/events"
)

// ErrNoActiveTool is returned when deactivating without an active tool.
var ErrNoActiveTool = errors.New("tools: no active tool")

// ErrNilTool is returned when activating a nil tool.
var ErrNilTool = errors.New("tools: nil tool")

// Kinds are the kinds of tools, decided when a tool is made.
type Kinds int32

const (
	// Generic tools stay active until they are deactivated.
	Generic Kinds = iota

	// SingleClick tools deactivate themselves once a capture
	// held by one of their behaviors ends.
	SingleClick
)

func (k Kinds) String() string {
	switch k {
	case Generic:
		return "Generic"
	case SingleClick:
		return "SingleClick"
	}
	return fmt.Sprintf("Kinds(%d)", int32(k))
}

// Tool is a user tool that contributes behaviors while it is active.
type Tool interface {
	Name() string
	Kind() Kinds

	// InputBehaviors returns the registry of the tool's behaviors.
	// Changes to it are followed while the tool is active.
	InputBehaviors() *capture.BehaviorRegistry
}

// Base is a basic [Tool] with a name, a kind and its own registry.
type Base struct {
	ToolName  string
	ToolKind  Kinds
	Behaviors *capture.BehaviorRegistry
}

// NewBase returns a new tool with an empty registry.
func NewBase(name string, kind Kinds) *Base {
	return &Base{ToolName: name, ToolKind: kind, Behaviors: capture.NewRegistry[capture.Behavior](name, nil)}
}

func (b *Base) Name() string                              { return b.ToolName }
func (b *Base) Kind() Kinds                               { return b.ToolKind }
func (b *Base) InputBehaviors() *capture.BehaviorRegistry { return b.Behaviors }

// Activation is sent to [Manager.OnActivationChanged] listeners.
type Activation struct {
	Tool   Tool
	Active bool
}

// Manager holds the active tool. Activation changes are rejected with
// [capture.ErrReentrant] while a capture callback is running; such
// changes must be scheduled for the next frame instead.
type Manager struct {
	// OnActivationChanged is called after a tool is deactivated or activated.
	// A switch from one tool to another sends the deactivation first.
	OnActivationChanged events.Listeners[Activation]

	guard  *capture.Guard
	active Tool
}

// NewManager returns a new tool manager locked by the given guard.
func NewManager(guard *capture.Guard) *Manager {
	return &Manager{guard: guard}
}

// Active returns the active tool, or nil.
func (m *Manager) Active() Tool {
	return m.active
}

// Activate makes the given tool active, deactivating the current one first.
// Activating the active tool does nothing.
func (m *Manager) Activate(t Tool) error {
	if err := m.guard.Check("tools.Activate"); err != nil {
		return err
	}
	if t == nil {
		return ErrNilTool
	}
	if t == m.active {
		return nil
	}
	if m.active != nil {
		m.deactivate()
	}
	m.active = t
	slog.Info("tool activated", "tool", t.Name(), "kind", t.Kind())
	m.OnActivationChanged.Call(Activation{Tool: t, Active: true})
	return nil
}

// Deactivate deactivates the active tool.
func (m *Manager) Deactivate() error {
	if err := m.guard.Check("tools.Deactivate"); err != nil {
		return err
	}
	if m.active == nil {
		return ErrNoActiveTool
	}
	m.deactivate()
	return nil
}

func (m *Manager) deactivate() {
	t := m.active
	m.active = nil
	slog.Info("tool deactivated", "tool", t.Name())
	m.OnActivationChanged.Call(Activation{Tool: t, Active: false})
}
