// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"cogentcore.org/xrshell/base/errors"
)

// ErrReentrant is returned by structural operations attempted
// while a capture callback is running.
var ErrReentrant = errors.New("capture: structural operation inside a capture callback")

// CallbackFault is a panic recovered from a behavior callback.
type CallbackFault struct {
	// Identifier is the capture identifier of the behavior.
	Identifier string

	// Callback is the name of the callback that panicked.
	Callback string

	Channel Channel

	// Value is the value passed to panic.
	Value any

	Stack []byte
}

func (f *CallbackFault) Error() string {
	return fmt.Sprintf("capture: %s.%s on %v panicked: %v", f.Identifier, f.Callback, f.Channel, f.Value)
}

// Unwrap returns the panic value if it is an error.
func (f *CallbackFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

func newFault(identifier, callback string, ch Channel, v any) *CallbackFault {
	return &CallbackFault{Identifier: identifier, Callback: callback, Channel: ch, Value: v, Stack: debug.Stack()}
}

func logFault(f *CallbackFault) {
	slog.Error("capture callback fault", "behavior", f.Identifier, "callback", f.Callback, "channel", f.Channel, "panic", f.Value)
	slog.Debug(string(f.Stack))
}
