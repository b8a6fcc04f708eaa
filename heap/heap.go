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

// Package heap implements a binary min-heap or max-heap stored in an
// arraylist.List.
package heap

import (
	"github.com/lupra/structs/arraylist"
	"github.com/lupra/structs/compare"
)

// Kind selects which end of the ordering sits at the top of the heap.
type Kind uint8

const (
	// Min keeps the smallest value at the top.
	Min Kind = iota
	// Max keeps the largest value at the top.
	Max
)

func (k Kind) String() string {
	switch k {
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return "unknown"
}

// Heap is a binary heap of values ordered by a comparator.
//
// A Heap is NOT goroutine-safe.
type Heap[T any] struct {
	kind  Kind
	cmp   compare.Func[T]
	items *arraylist.List[T]
}

// New returns an empty heap. The initial capacity is rounded up to an even
// number.
func New[T any](kind Kind, cmp compare.Func[T], capacity int) *Heap[T] {
	if capacity%2 != 0 {
		capacity++
	}
	return &Heap[T]{
		kind:  kind,
		cmp:   cmp,
		items: arraylist.New[T](capacity),
	}
}

// Kind returns the kind of the heap.
func (h *Heap[T]) Kind() Kind {
	return h.kind
}

// Len returns the number of values in the heap.
func (h *Heap[T]) Len() int {
	return h.items.Len()
}

// Cap returns the capacity of the backing list.
func (h *Heap[T]) Cap() int {
	return h.items.Cap()
}

// Push adds v to the heap.
func (h *Heap[T]) Push(v T) {
	h.items.PushTail(v)
	h.up(h.items.Len() - 1)
}

// Peek returns the value at the top of the heap without removing it.
func (h *Heap[T]) Peek() (v T, ok bool) {
	return h.items.Head()
}

// Pop removes and returns the value at the top of the heap.
func (h *Heap[T]) Pop() (v T, ok bool) {
	n := h.items.Len()
	if n == 0 {
		return v, false
	}
	_ = h.items.Swap(0, n-1)
	v, _ = h.items.PopTail()
	h.down(0)
	return v, true
}

// above reports whether the value at i belongs above the value at j.
func (h *Heap[T]) above(i, j int) bool {
	a, _ := h.items.At(i)
	b, _ := h.items.At(j)
	c := h.cmp(a, b)
	if h.kind == Max {
		return c > 0
	}
	return c < 0
}

func (h *Heap[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.above(i, parent) {
			return
		}
		_ = h.items.Swap(i, parent)
		i = parent
	}
}

func (h *Heap[T]) down(i int) {
	n := h.items.Len()
	for {
		top := i
		if l := 2*i + 1; l < n && h.above(l, top) {
			top = l
		}
		if r := 2*i + 2; r < n && h.above(r, top) {
			top = r
		}
		if top == i {
			return
		}
		_ = h.items.Swap(i, top)
		i = top
	}
}
