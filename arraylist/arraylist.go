// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arraylist implements a contiguous dynamic array whose capacity is
// managed explicitly. Insertions that would exceed the capacity double it;
// Resize sets it directly.
package arraylist

import (
	"github.com/lupra/structs/compare"
	"github.com/lupra/structs/search"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	// ErrOutOfRange is returned when a position does not address a value.
	ErrOutOfRange = errors.New("position out of range")
	// ErrCapacityTooSmall is returned by Resize when the requested capacity
	// cannot hold the values already in the list.
	ErrCapacityTooSmall = errors.New("capacity smaller than list size")
)

// List is a dynamic array of values. The zero value is an empty list with
// no capacity.
//
// A List is NOT goroutine-safe.
type List[T any] struct {
	// len(items) is the size and cap(items) the capacity.
	items []T
}

// New returns an empty list with room for capacity values.
func New[T any](capacity int) *List[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &List[T]{items: make([]T, 0, capacity)}
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Cap returns the number of values the list can hold before it has to grow.
func (l *List[T]) Cap() int {
	return cap(l.items)
}

func (l *List[T]) outOfRange(pos int) error {
	return errors.Wrapf(ErrOutOfRange, "position %d, size %d", pos, len(l.items))
}

// IndexOf returns the position of the first value equal to v according to
// cmp, or -1.
func (l *List[T]) IndexOf(v T, cmp compare.Func[T]) int {
	return slices.IndexFunc(l.items, func(e T) bool {
		return cmp(e, v) == 0
	})
}

// BinarySearch returns the position of v in a list sorted ascending by cmp,
// or -1.
func (l *List[T]) BinarySearch(v T, cmp compare.Func[T]) int {
	return search.BinarySearchFunc(l.items, v, cmp)
}

// InsertAt inserts v at position pos, shifting the values at pos and after
// it back by one. Inserting at Len() appends.
func (l *List[T]) InsertAt(pos int, v T) error {
	if pos < 0 || pos > len(l.items) {
		return l.outOfRange(pos)
	}
	if len(l.items) == cap(l.items) {
		l.grow(max(1, 2*cap(l.items)))
	}
	l.items = slices.Insert(l.items, pos, v)
	return nil
}

// At returns the value at position pos.
func (l *List[T]) At(pos int) (v T, err error) {
	if pos < 0 || pos >= len(l.items) {
		return v, l.outOfRange(pos)
	}
	return l.items[pos], nil
}

// Set stores v at position pos. Setting past the end extends the list,
// filling any skipped positions with the zero value, and grows the capacity
// to exactly pos+1 if needed.
func (l *List[T]) Set(pos int, v T) error {
	if pos < 0 {
		return l.outOfRange(pos)
	}
	if pos >= len(l.items) {
		if pos >= cap(l.items) {
			l.grow(pos + 1)
		}
		n := len(l.items)
		l.items = l.items[:pos+1]
		// Reslicing exposes whatever the backing array held.
		clear(l.items[n:pos])
	}
	l.items[pos] = v
	return nil
}

// DeleteAt removes the value at position pos, shifting the values after it
// forward by one.
func (l *List[T]) DeleteAt(pos int) (v T, err error) {
	if pos < 0 || pos >= len(l.items) {
		return v, l.outOfRange(pos)
	}
	v = l.items[pos]
	n := len(l.items)
	l.items = slices.Delete(l.items, pos, pos+1)
	var zero T
	l.items[:n][n-1] = zero
	return v, nil
}

// DeleteValue removes the first value equal to v according to cmp and
// returns it, reporting ok=false if there is none.
func (l *List[T]) DeleteValue(v T, cmp compare.Func[T]) (removed T, ok bool) {
	i := l.IndexOf(v, cmp)
	if i < 0 {
		return removed, false
	}
	removed, _ = l.DeleteAt(i)
	return removed, true
}

// Head returns the first value.
func (l *List[T]) Head() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	return l.items[0], true
}

// Tail returns the last value.
func (l *List[T]) Tail() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	return l.items[len(l.items)-1], true
}

// PushHead inserts v at the front of the list.
func (l *List[T]) PushHead(v T) {
	_ = l.InsertAt(0, v)
}

// PushTail appends v to the list.
func (l *List[T]) PushTail(v T) {
	_ = l.InsertAt(len(l.items), v)
}

// PopHead removes and returns the first value.
func (l *List[T]) PopHead() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	v, _ = l.DeleteAt(0)
	return v, true
}

// PopTail removes and returns the last value.
func (l *List[T]) PopTail() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	v, _ = l.DeleteAt(len(l.items) - 1)
	return v, true
}

// All calls yield sequentially for each value along with its position. If
// yield returns false, iteration stops.
func (l *List[T]) All(yield func(pos int, v T) bool) {
	for i, v := range l.items {
		if !yield(i, v) {
			return
		}
	}
}

// Swap exchanges the values at positions i and j.
func (l *List[T]) Swap(i, j int) error {
	if i < 0 || i >= len(l.items) {
		return l.outOfRange(i)
	}
	if j < 0 || j >= len(l.items) {
		return l.outOfRange(j)
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	return nil
}

// Truncate drops every value from position n onwards.
func (l *List[T]) Truncate(n int) error {
	if n < 0 || n > len(l.items) {
		return l.outOfRange(n)
	}
	clear(l.items[n:])
	l.items = l.items[:n]
	return nil
}

// Resize sets the capacity of the list. It fails if capacity is smaller
// than Len().
func (l *List[T]) Resize(capacity int) error {
	if capacity < len(l.items) {
		return errors.Wrapf(ErrCapacityTooSmall, "capacity %d, size %d", capacity, len(l.items))
	}
	if capacity != cap(l.items) {
		l.grow(capacity)
	}
	return nil
}

// grow reallocates the backing array with the given capacity, which must be
// at least Len().
func (l *List[T]) grow(capacity int) {
	items := make([]T, len(l.items), capacity)
	copy(items, l.items)
	l.items = items
}
