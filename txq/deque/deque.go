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

// Package deque implements a double-ended queue on a power-of-two ring.
//
// Pushing and popping at either end is O(1) amortized. The zero value is an
// empty deque ready to use. A Deque is not safe for concurrent use.
package deque

const minCap = 8

// Deque is a double-ended queue.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	return d.count
}

// PushBack appends v at the tail.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[(d.head+d.count)&(len(d.buf)-1)] = v
	d.count++
}

// PushFront prepends v at the head.
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head = (d.head - 1) & (len(d.buf) - 1)
	d.buf[d.head] = v
	d.count++
}

// PopFront removes and returns the head element.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) & (len(d.buf) - 1)
	d.count--
	return v, true
}

// PopBack removes and returns the tail element.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	i := (d.head + d.count - 1) & (len(d.buf) - 1)
	v := d.buf[i]
	d.buf[i] = zero
	d.count--
	return v, true
}

// Front returns the head element without removing it.
func (d *Deque[T]) Front() (T, bool) {
	if d.count == 0 {
		var zero T
		return zero, false
	}
	return d.buf[d.head], true
}

// At returns the i-th element counted from the head. It panics if i is out of
// range.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.count {
		panic("deque: index out of range")
	}
	return d.buf[(d.head+i)&(len(d.buf)-1)]
}

// RemoveFunc removes every element for which drop returns true, keeping the
// relative order of the others. It returns the number of removed elements.
func (d *Deque[T]) RemoveFunc(drop func(T) bool) int {
	kept := 0
	for i := 0; i < d.count; i++ {
		v := d.At(i)
		if drop(v) {
			continue
		}
		d.buf[(d.head+kept)&(len(d.buf)-1)] = v
		kept++
	}
	var zero T
	for i := kept; i < d.count; i++ {
		d.buf[(d.head+i)&(len(d.buf)-1)] = zero
	}
	removed := d.count - kept
	d.count = kept
	return removed
}

// Drain pops every element in order and passes it to fn.
func (d *Deque[T]) Drain(fn func(T)) {
	for d.count > 0 {
		v, _ := d.PopFront()
		fn(v)
	}
}

func (d *Deque[T]) grow() {
	if d.count < len(d.buf) {
		return
	}
	n := len(d.buf) * 2
	if n < minCap {
		n = minCap
	}
	buf := make([]T, n)
	for i := 0; i < d.count; i++ {
		buf[i] = d.buf[(d.head+i)&(len(d.buf)-1)]
	}
	d.buf = buf
	d.head = 0
}
