// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoverLifecycle(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	require.NoError(t, fx.registry.Add("", h))

	fx.frame(mouseFrame)
	fx.frame(mouseFrame)
	assert.Equal(t, []Behavior{h}, fx.hover.Hovered(MouseOrGamepad))

	h.hit = false
	fx.frame(mouseFrame)
	fx.frame(mouseFrame)
	assert.Equal(t, []string{
		"h.UpdateHover(MouseOrGamepad)",
		"h.UpdateHover(MouseOrGamepad)",
		"h.EndHover(MouseOrGamepad)",
	}, fx.rec.calls)
	assert.Empty(t, fx.hover.Hovered(MouseOrGamepad))
}

func TestHoverDisabled(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	require.NoError(t, fx.registry.Add("", h))
	fx.frame(touchFrame)

	h.hoverable = false
	fx.frame(touchFrame)
	fx.frame(touchFrame)
	assert.Equal(t, []string{"h.UpdateHover(Touch)", "h.EndHover(Touch)"}, fx.rec.calls)
}

func TestHoverEndsBeforeBegin(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	btn := fx.fake("btn", 0)
	require.NoError(t, fx.registry.Add("", h, btn))
	fx.frame(mouseFrame)

	btn.wants = true
	fx.frame(mouseFrame)
	fx.frame(mouseFrame)
	assert.Equal(t, []string{
		"h.UpdateHover(MouseOrGamepad)",
		"h.EndHover(MouseOrGamepad)",
		"btn.Begin(Any)",
		"btn.Update",
	}, fx.rec.calls, "no hover updates while the channel is captured")
}

func TestHoverEndsOnceWhenAllDecline(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	a := fx.fake("a", 0)
	b := fx.fake("b", 1)
	a.wants, a.decline = true, true
	b.wants, b.decline = true, true
	require.NoError(t, fx.registry.Add("", h, a, b))
	fx.frame(mouseFrame)
	fx.rec.calls = nil

	fx.frame(mouseFrame)
	assert.Equal(t, []string{
		"h.EndHover(MouseOrGamepad)",
		"a.Begin(Any)",
		"b.Begin(Any)",
		"h.UpdateHover(MouseOrGamepad)",
	}, fx.rec.calls)
}

func TestHoverSpatialSides(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	l := fx.fake("l", 0)
	require.NoError(t, fx.registry.Add("", h, l))
	fx.frame(spatialFrame)
	assert.Equal(t, []Behavior{h}, fx.hover.Hovered(SpatialLeft))
	assert.Equal(t, []Behavior{h}, fx.hover.Hovered(SpatialRight))

	l.wants, l.side = true, Left
	fx.rec.calls = nil
	fx.frame(spatialFrame)
	assert.Equal(t, []string{
		"h.EndHover(SpatialLeft)",
		"l.Begin(Left)",
		"h.UpdateHover(SpatialRight)",
	}, fx.rec.calls)
	assert.Empty(t, fx.hover.Hovered(SpatialLeft))
}

func TestHoverEndsOnRemove(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	require.NoError(t, fx.registry.Add("g", h))
	fx.frame(mouseFrame)
	fx.frame(touchFrame)

	_, err := fx.registry.RemoveByGroup("g")
	require.NoError(t, err)
	fx.frame(mouseFrame)
	assert.Equal(t, []string{
		"h.UpdateHover(MouseOrGamepad)",
		"h.UpdateHover(Touch)",
		"h.EndHover(MouseOrGamepad)",
		"h.EndHover(Touch)",
	}, fx.rec.calls)
}

func TestHoverTerminateAll(t *testing.T) {
	fx := newFixture()
	h := fx.fake("h", 0)
	h.hoverable, h.hit = true, true
	require.NoError(t, fx.registry.Add("", h))
	fx.frame(mouseFrame)
	fx.hover.TerminateAll(mouseFrame)
	fx.hover.TerminateAll(mouseFrame)
	assert.Equal(t, []string{"h.UpdateHover(MouseOrGamepad)", "h.EndHover(MouseOrGamepad)"}, fx.rec.calls)
}
