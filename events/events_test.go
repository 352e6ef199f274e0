// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenersOrder(t *testing.T) {
	var ls Listeners[int]
	var got []string
	ls.Add(func(v int) { got = append(got, "a") })
	id := ls.Add(func(v int) { got = append(got, "b") })
	ls.Add(func(v int) { got = append(got, "c") })

	ls.Call(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	assert.True(t, ls.Remove(id))
	assert.False(t, ls.Remove(id))
	got = nil
	ls.Call(2)
	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, 2, ls.Len())
}

func TestListenersAddDuringCall(t *testing.T) {
	var ls Listeners[int]
	n := 0
	ls.Add(func(v int) {
		n++
		ls.Add(func(v int) { n += 10 })
	})
	ls.Call(0)
	assert.Equal(t, 1, n)
	ls.Call(0)
	assert.Equal(t, 12, n)
}

func TestQueueDrain(t *testing.T) {
	var q Queue[int]
	q.Init()
	for i := range 5 {
		q.Send(i)
	}
	var got []int
	n := q.Drain(func(v int) {
		got = append(got, v)
		if v == 0 {
			q.Send(100)
		}
	})
	assert.Equal(t, 5, n)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, uint64(1), q.Len())

	v, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, 100, v)
	_, ok = q.Next()
	assert.False(t, ok)
}

func TestQueueConcurrentSend(t *testing.T) {
	var q Queue[int]
	q.Init()
	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				q.Send(g*100 + i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(400), q.Len())
	seen := map[int]bool{}
	q.Drain(func(v int) { seen[v] = true })
	assert.Len(t, seen, 400)
}
