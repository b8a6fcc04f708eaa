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

// Package list implements a doubly-linked list. It is the storage for the
// chains of colliding entries in a hashtable.Table but is usable on its own
// as a queue or a stack.
package list

import (
	"github.com/pkg/errors"
)

// ErrOutOfRange is returned when a position does not address a node.
var ErrOutOfRange = errors.New("position out of range")

type node[T any] struct {
	value      T
	prev, next *node[T]
}

// List is a doubly-linked list of values. The zero value is an empty list
// ready to use.
//
// A List is NOT goroutine-safe.
type List[T any] struct {
	head, tail *node[T]
	size       int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int {
	return l.size
}

// Head returns the first value, or ok=false if the list is empty.
func (l *List[T]) Head() (value T, ok bool) {
	if l.head == nil {
		return value, false
	}
	return l.head.value, true
}

// Tail returns the last value, or ok=false if the list is empty.
func (l *List[T]) Tail() (value T, ok bool) {
	if l.tail == nil {
		return value, false
	}
	return l.tail.value, true
}

// PushHead prepends value to the list.
func (l *List[T]) PushHead(value T) {
	n := &node[T]{value: value, next: l.head}
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.size++
}

// PushTail appends value to the list.
func (l *List[T]) PushTail(value T) {
	n := &node[T]{value: value, prev: l.tail}
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
}

// PopHead removes and returns the first value, or ok=false if the list is
// empty.
func (l *List[T]) PopHead() (value T, ok bool) {
	if l.head == nil {
		return value, false
	}
	n := l.head
	l.unlink(n)
	return n.value, true
}

// PopTail removes and returns the last value, or ok=false if the list is
// empty.
func (l *List[T]) PopTail() (value T, ok bool) {
	if l.tail == nil {
		return value, false
	}
	n := l.tail
	l.unlink(n)
	return n.value, true
}

// At returns the value at position pos.
func (l *List[T]) At(pos int) (value T, err error) {
	n := l.nodeAt(pos)
	if n == nil {
		return value, errors.Wrapf(ErrOutOfRange, "position %d, size %d", pos, l.size)
	}
	return n.value, nil
}

// InsertAt inserts value so that it ends up at position pos, shifting the
// node at pos (if any) and its successors back by one. Inserting at Len()
// appends.
func (l *List[T]) InsertAt(pos int, value T) error {
	if pos == l.size {
		l.PushTail(value)
		return nil
	}
	existing := l.nodeAt(pos)
	if existing == nil {
		return errors.Wrapf(ErrOutOfRange, "position %d, size %d", pos, l.size)
	}
	n := &node[T]{value: value, prev: existing.prev, next: existing}
	if existing.prev != nil {
		existing.prev.next = n
	} else {
		l.head = n
	}
	existing.prev = n
	l.size++
	return nil
}

// DeleteAt removes the node at position pos and returns its value.
func (l *List[T]) DeleteAt(pos int) (value T, err error) {
	n := l.nodeAt(pos)
	if n == nil {
		return value, errors.Wrapf(ErrOutOfRange, "position %d, size %d", pos, l.size)
	}
	l.unlink(n)
	return n.value, nil
}

// All calls yield sequentially for each value from head to tail, along with
// its position. If yield returns false, iteration stops. yield may delete
// any value: a node removed from the list keeps its links, so a walk that
// holds it carries on to the nodes after it. Such a removed node may itself
// still be handed to yield.
func (l *List[T]) All(yield func(pos int, value T) bool) {
	pos := 0
	for n := l.head; n != nil; pos++ {
		next := n.next
		if !yield(pos, n.value) {
			return
		}
		n = next
	}
}

// Backward is like All but walks from tail to head. Positions count up from
// zero at the tail.
func (l *List[T]) Backward(yield func(pos int, value T) bool) {
	pos := 0
	for n := l.tail; n != nil; pos++ {
		prev := n.prev
		if !yield(pos, n.value) {
			return
		}
		n = prev
	}
}

// Clear removes every value, unlinking all nodes.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		*n = node[T]{}
		n = next
	}
	l.head, l.tail, l.size = nil, nil, 0
}

// nodeAt walks from whichever end of the list is closer to pos.
func (l *List[T]) nodeAt(pos int) *node[T] {
	if pos < 0 || pos >= l.size {
		return nil
	}
	if pos < l.size/2 {
		n := l.head
		for i := 0; i < pos; i++ {
			n = n.next
		}
		return n
	}
	n := l.tail
	for i := l.size - 1; i > pos; i-- {
		n = n.prev
	}
	return n
}

func (l *List[T]) unlink(n *node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.size--
}
