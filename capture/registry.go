// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"log/slog"
	"slices"

	"cogentcore.org/xrshell/events"
)

// Registry is an ordered collection of items, each tagged with an optional
// group name. It keeps the order items were added in, with fast
// membership lookup, in the manner of an ordered map.
//
// Mutations are synchronous and fail with [ErrReentrant] while the
// registry's [Guard] is held. Before items are removed, [Registry.BeforeRemove]
// listeners receive them, so that captures and hovers they own can be
// terminated first. After any change, [Registry.OnSetChanged] listeners
// are called.
type Registry[B comparable] struct {
	// Name is used in log messages.
	Name string

	// OnSetChanged is called after every add or remove that changed the registry.
	OnSetChanged events.Listeners[*Registry[B]]

	// BeforeRemove is called with the items about to be removed,
	// before the registry is changed.
	BeforeRemove events.Listeners[[]B]

	guard *Guard
	order []entry[B]
	index map[B]int
}

type entry[B comparable] struct {
	item  B
	group string
}

// NewRegistry returns a new registry that is locked by the given guard,
// which may be nil.
func NewRegistry[B comparable](name string, guard *Guard) *Registry[B] {
	return &Registry[B]{Name: name, guard: guard, index: map[B]int{}}
}

// SetGuard locks the registry with the given guard, which may be nil.
// A registry that feeds a group of another registry shares its guard,
// so that neither can change under a running callback.
func (r *Registry[B]) SetGuard(guard *Guard) {
	r.guard = guard
}

// Guard returns the guard that locks the registry, or nil.
func (r *Registry[B]) Guard() *Guard {
	return r.guard
}

// Len returns the number of items.
func (r *Registry[B]) Len() int {
	return len(r.order)
}

// Contains returns whether the item is in the registry.
func (r *Registry[B]) Contains(item B) bool {
	_, ok := r.index[item]
	return ok
}

// Group returns the group of the item, and false if it is not in the registry.
func (r *Registry[B]) Group(item B) (string, bool) {
	i, ok := r.index[item]
	if !ok {
		return "", false
	}
	return r.order[i].group, true
}

// Members returns a copy of the items in order.
func (r *Registry[B]) Members() []B {
	items := make([]B, len(r.order))
	for i, e := range r.order {
		items[i] = e.item
	}
	return items
}

// GroupMembers returns a copy of the items in the given group, in order.
func (r *Registry[B]) GroupMembers(group string) []B {
	var items []B
	for _, e := range r.order {
		if e.group == group {
			items = append(items, e.item)
		}
	}
	return items
}

// Add adds the items at the end of the registry under the given group,
// which may be empty. Items that are already present are skipped.
func (r *Registry[B]) Add(group string, items ...B) error {
	if err := r.guard.Check("Registry.Add"); err != nil {
		return err
	}
	if r.add(group, items) > 0 {
		r.OnSetChanged.Call(r)
	}
	return nil
}

func (r *Registry[B]) add(group string, items []B) int {
	if r.index == nil {
		r.index = map[B]int{}
	}
	n := 0
	for _, it := range items {
		if i, has := r.index[it]; has {
			if r.order[i].group != group {
				slog.Warn("registry item already added in another group", "registry", r.Name, "group", r.order[i].group, "requested", group)
			}
			continue
		}
		r.index[it] = len(r.order)
		r.order = append(r.order, entry[B]{item: it, group: group})
		n++
	}
	return n
}

// Remove removes the items from the registry. Items that are not present are ignored.
func (r *Registry[B]) Remove(items ...B) error {
	if err := r.guard.Check("Registry.Remove"); err != nil {
		return err
	}
	present := slices.DeleteFunc(slices.Clone(items), func(it B) bool { return !r.Contains(it) })
	if r.remove(present) > 0 {
		r.OnSetChanged.Call(r)
	}
	return nil
}

// RemoveByGroup removes all of the items in the given group and returns them.
func (r *Registry[B]) RemoveByGroup(group string) ([]B, error) {
	if err := r.guard.Check("Registry.RemoveByGroup"); err != nil {
		return nil, err
	}
	removed := r.GroupMembers(group)
	if r.remove(removed) > 0 {
		r.OnSetChanged.Call(r)
	}
	return removed, nil
}

// SyncGroup makes the given group hold exactly the given items. Members of
// the group that are not in items are removed, and items that are not in
// the registry are added at the end. Members present in both keep their place,
// so an item that is capturing is not disturbed.
func (r *Registry[B]) SyncGroup(group string, items []B) error {
	if err := r.guard.Check("Registry.SyncGroup"); err != nil {
		return err
	}
	var stale []B
	for _, e := range r.order {
		if e.group == group && !slices.Contains(items, e.item) {
			stale = append(stale, e.item)
		}
	}
	n := r.remove(stale)
	n += r.add(group, items)
	if n > 0 {
		r.OnSetChanged.Call(r)
	}
	return nil
}

// remove removes the given items, which must all be present.
// The items are handed to BeforeRemove listeners first.
func (r *Registry[B]) remove(items []B) int {
	if len(items) == 0 {
		return 0
	}
	r.BeforeRemove.Call(items)
	r.order = slices.DeleteFunc(r.order, func(e entry[B]) bool {
		return slices.Contains(items, e.item)
	})
	clear(r.index)
	for i, e := range r.order {
		r.index[e.item] = i
	}
	return len(items)
}
