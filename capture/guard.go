// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"fmt"
)

// Guard is the re-entrancy guard held while capture callbacks run.
// One guard is shared by the registry, the arbiter and anything else
// whose structure must not change under a running callback.
// A nil *Guard is never held.
type Guard struct {
	held  bool
	owner string
}

// Enter takes the guard on behalf of owner and returns the function that
// releases it. The release function is safe to call more than once, so
// it is typically deferred:
//
//	defer g.Enter("BeginCapture")()
//
// Enter panics if the guard is already held, which is a programming error.
func (g *Guard) Enter(owner string) (release func()) {
	if g == nil {
		return func() {}
	}
	if g.held {
		panic(fmt.Errorf("%w: %s entered during %s", ErrReentrant, owner, g.owner))
	}
	g.held = true
	g.owner = owner
	done := false
	return func() {
		if done {
			return
		}
		done = true
		g.held = false
		g.owner = ""
	}
}

// Held returns whether the guard is held.
func (g *Guard) Held() bool {
	return g != nil && g.held
}

// Check returns an error wrapping [ErrReentrant] if the guard is held,
// naming the rejected operation.
func (g *Guard) Check(op string) error {
	if !g.Held() {
		return nil
	}
	return fmt.Errorf("%w: %s rejected during %s", ErrReentrant, op, g.owner)
}
