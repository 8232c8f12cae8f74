// Copyright 2026 The openwmac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwmac/wmac/txq/deque"
)

func drain(d *deque.Deque[int]) []int {
	var out []int
	d.Drain(func(v int) { out = append(out, v) })
	return out
}

func TestPushPop(t *testing.T) {
	var d deque.Deque[int]
	_, ok := d.PopFront()
	assert.False(t, ok)

	for i := 0; i < 20; i++ {
		d.PushBack(i)
	}
	v, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	d.PushFront(v)
	d.PushFront(-1)

	back, ok := d.PopBack()
	assert.True(t, ok)
	assert.Equal(t, 19, back)

	front, _ := d.Front()
	assert.Equal(t, -1, front)
	assert.Equal(t, 20, d.Len())
	assert.Equal(t, 18, d.At(19))

	want := []int{-1}
	for i := 0; i < 19; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, drain(&d))
	assert.Equal(t, 0, d.Len())
}

func TestWrapAround(t *testing.T) {
	var d deque.Deque[int]
	var pushed, popped []int
	for round := 0; round < 5; round++ {
		for i := 0; i < 6; i++ {
			d.PushBack(round*10 + i)
			pushed = append(pushed, round*10+i)
		}
		for i := 0; i < 5; i++ {
			v, ok := d.PopFront()
			assert.True(t, ok)
			popped = append(popped, v)
		}
	}
	assert.Equal(t, pushed[:len(popped)], popped)
	assert.Equal(t, []int{41, 42, 43, 44, 45}, drain(&d))
}

func TestRemoveFunc(t *testing.T) {
	var d deque.Deque[int]
	d.PushBack(2)
	d.PushBack(3)
	d.PushFront(1)
	d.PushBack(4)
	removed := d.RemoveFunc(func(v int) bool { return v%2 == 0 })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{1, 3}, drain(&d))
}

func TestAtPanics(t *testing.T) {
	var d deque.Deque[string]
	assert.Panics(t, func() { d.At(0) })
}
