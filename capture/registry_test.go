// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"testing"

	"cogentcore.org/xrshell/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGroups(t *testing.T) {
	rec := &recorder{}
	a := &fake{id: "a", rec: rec}
	b := &fake{id: "b", rec: rec}
	c := &fake{id: "c", rec: rec}
	r := NewRegistry[Behavior]("test", nil)

	changes := 0
	r.OnSetChanged.Add(func(reg *BehaviorRegistry) {
		assert.Same(t, r, reg)
		changes++
	})

	require.NoError(t, r.Add(GroupActiveTool, a, b))
	require.NoError(t, r.Add("", c))
	assert.Equal(t, 2, changes)
	assert.Equal(t, []Behavior{a, b, c}, r.Members())
	assert.Equal(t, []Behavior{a, b}, r.GroupMembers(GroupActiveTool))
	g, ok := r.Group(b)
	assert.True(t, ok)
	assert.Equal(t, GroupActiveTool, g)

	// duplicates are skipped and do not notify
	require.NoError(t, r.Add(GroupActiveTool, a))
	assert.Equal(t, 2, changes)
	assert.Equal(t, 3, r.Len())

	removed, err := r.RemoveByGroup(GroupActiveTool)
	require.NoError(t, err)
	assert.Equal(t, []Behavior{a, b}, removed)
	assert.False(t, r.Contains(a))
	assert.True(t, r.Contains(c))
	assert.Equal(t, 3, changes)

	// removing an empty group or missing items changes nothing
	removed, err = r.RemoveByGroup("none")
	require.NoError(t, err)
	assert.Empty(t, removed)
	require.NoError(t, r.Remove(a))
	assert.Equal(t, 3, changes)

	require.NoError(t, r.Remove(c))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 4, changes)
}

func TestRegistryBeforeRemove(t *testing.T) {
	a := &fake{id: "a"}
	b := &fake{id: "b"}
	r := NewRegistry[Behavior]("test", nil)
	require.NoError(t, r.Add("g", a, b))

	var seen []Behavior
	r.BeforeRemove.Add(func(items []Behavior) {
		for _, it := range items {
			assert.True(t, r.Contains(it), "BeforeRemove must run before removal")
		}
		seen = append(seen, items...)
	})
	require.NoError(t, r.Remove(b, &fake{id: "missing"}))
	assert.Equal(t, []Behavior{b}, seen)
	assert.Equal(t, []Behavior{a}, r.Members())
}

func TestRegistrySyncGroup(t *testing.T) {
	a := &fake{id: "a"}
	b := &fake{id: "b"}
	c := &fake{id: "c"}
	x := &fake{id: "x"}
	r := NewRegistry[Behavior]("test", nil)
	require.NoError(t, r.Add("tool", a, b))
	require.NoError(t, r.Add("", x))

	var removed []Behavior
	r.BeforeRemove.Add(func(items []Behavior) { removed = append(removed, items...) })
	changes := 0
	r.OnSetChanged.Add(func(*BehaviorRegistry) { changes++ })

	require.NoError(t, r.SyncGroup("tool", []Behavior{b, c}))
	assert.Equal(t, []Behavior{a}, removed)
	assert.Equal(t, []Behavior{b, x, c}, r.Members())
	assert.Equal(t, []Behavior{b, c}, r.GroupMembers("tool"))
	assert.Equal(t, 1, changes)

	require.NoError(t, r.SyncGroup("tool", []Behavior{b, c}))
	assert.Equal(t, 1, changes, "no change, no notification")
}

func TestRegistryGuard(t *testing.T) {
	g := &Guard{}
	a := &fake{id: "a"}
	r := NewRegistry[Behavior]("test", g)
	require.NoError(t, r.Add("", a))

	release := g.Enter("UpdateCapture")
	assert.ErrorIs(t, r.Add("", &fake{id: "b"}), ErrReentrant)
	assert.ErrorIs(t, r.Remove(a), ErrReentrant)
	_, err := r.RemoveByGroup("")
	assert.ErrorIs(t, err, ErrReentrant)
	assert.ErrorIs(t, r.SyncGroup("", nil), ErrReentrant)
	assert.Equal(t, 1, r.Len())
	release()
	release()

	assert.False(t, g.Held())
	assert.NoError(t, r.Remove(a))
}

func TestRegistrySetGuard(t *testing.T) {
	g := &Guard{}
	r := NewRegistry[Behavior]("test", nil)
	assert.Nil(t, r.Guard())
	r.SetGuard(g)
	assert.Same(t, g, r.Guard())

	release := g.Enter("BeginCapture")
	assert.ErrorIs(t, r.Add("", &fake{id: "a"}), ErrReentrant)
	release()
	assert.NoError(t, r.Add("", &fake{id: "a"}))
}

func TestGuardPanicsWhenNested(t *testing.T) {
	g := &Guard{}
	defer g.Enter("BeginCapture")()
	assert.PanicsWithError(t, "capture: structural operation inside a capture callback: UpdateCapture entered during BeginCapture", func() {
		g.Enter("UpdateCapture")
	})
	var ng *Guard
	assert.False(t, ng.Held())
	assert.NoError(t, ng.Check("x"))
	ng.Enter("x")()
}

func TestOverrideRegistry(t *testing.T) {
	r := NewRegistry[Overrider]("overrides", nil)
	o := &overrideFunc{}
	require.NoError(t, r.Add(GroupCockpitOverride, o))
	assert.True(t, r.Contains(o))
}

type overrideFunc struct{ n int }

func (o *overrideFunc) OverrideInput(*input.Snapshot) { o.n++ }
