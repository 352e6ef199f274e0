// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cockpit

import (
	"testing"

	"cogentcore.org/xrshell/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	s := NewStack(&capture.Guard{})
	var changes []Change
	s.OnActiveChanged.Add(func(c Change) { changes = append(changes, c) })

	main := New("main")
	menu := New("menu")
	require.NoError(t, s.Push(main))
	require.NoError(t, s.Push(menu))
	assert.Same(t, menu, s.Active())
	assert.Equal(t, 2, s.Len())

	c, err := s.Pop()
	require.NoError(t, err)
	assert.Same(t, menu, c)
	assert.Same(t, main, s.Active())
	_, err = s.Pop()
	require.NoError(t, err)
	_, err = s.Pop()
	assert.ErrorIs(t, err, ErrEmptyStack)

	assert.Equal(t, []Change{
		{Previous: nil, Current: main},
		{Previous: main, Current: menu},
		{Previous: menu, Current: main},
		{Previous: main, Current: nil},
	}, changes)
}

func TestStackReentrant(t *testing.T) {
	g := &capture.Guard{}
	s := NewStack(g)
	main := New("main")
	require.NoError(t, s.Push(main))

	release := g.Enter("UpdateCapture")
	assert.ErrorIs(t, s.Push(New("dialog")), capture.ErrReentrant)
	_, err := s.Pop()
	assert.ErrorIs(t, err, capture.ErrReentrant)
	release()

	assert.Equal(t, 1, s.Len())
	assert.Same(t, main, s.Active())
}
