// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "slices"

// ListenerID identifies a function added to [Listeners],
// so that it can be removed again.
type ListenerID uint64

// Listeners is an explicit observer list of functions that receive a value
// of type T. Functions are called synchronously, in the order they were added.
// The zero value is ready to use. Listeners is not safe for concurrent use.
type Listeners[T any] struct {
	next  ListenerID
	funcs []listener[T]
}

type listener[T any] struct {
	id  ListenerID
	fun func(T)
}

// Add adds the given function and returns an id that can be passed to [Listeners.Remove].
func (ls *Listeners[T]) Add(fun func(T)) ListenerID {
	ls.next++
	ls.funcs = append(ls.funcs, listener[T]{id: ls.next, fun: fun})
	return ls.next
}

// Remove removes the function with the given id, returning false if it was not found.
func (ls *Listeners[T]) Remove(id ListenerID) bool {
	i := slices.IndexFunc(ls.funcs, func(l listener[T]) bool { return l.id == id })
	if i < 0 {
		return false
	}
	ls.funcs = slices.Delete(ls.funcs, i, i+1)
	return true
}

// Len returns the number of functions.
func (ls *Listeners[T]) Len() int {
	return len(ls.funcs)
}

// Call calls all of the functions with the given value, in registration order.
// Functions added or removed during the call take effect on the next call.
func (ls *Listeners[T]) Call(v T) {
	if len(ls.funcs) == 0 {
		return
	}
	funcs := slices.Clone(ls.funcs)
	for _, l := range funcs {
		l.fun(v)
	}
}
