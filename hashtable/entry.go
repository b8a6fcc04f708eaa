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

package hashtable

import "bytes"

// Ownership records who is responsible for releasing an entry's payloads.
type Ownership uint8

const (
	// Borrowed entries wrap caller supplied payloads. The table drops its
	// references to them but never releases them.
	Borrowed Ownership = iota
	// Owned entries hold their own copies of the key and value, which the
	// table releases when the entry is deleted, overwritten or the table is
	// closed.
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return "unknown"
	}
}

// Releaser is implemented by payloads holding resources that must be
// returned when an owning entry lets go of them.
type Releaser interface {
	Release() error
}

// Entry is a key/value pair stored in a Table along with its ownership.
type Entry[K, V any] struct {
	key       K
	value     V
	ownership Ownership
	// ownsValue is set when value must be released with the entry. It starts
	// out equal to ownership == Owned but a Borrowed entry takes it over when
	// SetEntry hands it the value of an Owned entry.
	ownsValue bool
	// removed is set once the entry has been deleted or the table closed, so
	// that iterations still holding it skip it.
	removed bool
}

// NewEntry returns a Borrowed entry wrapping key and value.
func NewEntry[K, V any](key K, value V) *Entry[K, V] {
	return &Entry[K, V]{key: key, value: value, ownership: Borrowed}
}

// CopyEntry returns an Owned entry holding copies of key and value. Byte
// slices are cloned; every other type is copied by value.
func CopyEntry[K, V any](key K, value V) *Entry[K, V] {
	return &Entry[K, V]{key: clone(key), value: clone(value), ownership: Owned, ownsValue: true}
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's value.
func (e *Entry[K, V]) Value() V {
	return e.value
}

// Ownership returns whether the entry owns its payloads.
func (e *Entry[K, V]) Ownership() Ownership {
	return e.ownership
}

// replaceValue overwrites the value in place. If owned is set the entry
// takes over value and becomes responsible for releasing it. Otherwise an
// Owned entry takes a copy of value and a Borrowed entry just references it.
// The value held before is released if the entry owned it. The ownership of
// the key is never changed.
func (e *Entry[K, V]) replaceValue(value V, owned bool) error {
	old, oldOwned := e.value, e.ownsValue
	switch {
	case owned:
		e.value, e.ownsValue = value, true
	case e.ownership == Owned:
		e.value, e.ownsValue = clone(value), true
	default:
		e.value, e.ownsValue = value, false
	}
	if oldOwned {
		return release(old)
	}
	return nil
}

// release marks the entry removed and drops its payloads, releasing the
// ones it owns first. The entry must not be used afterwards.
func (e *Entry[K, V]) release() error {
	var err error
	if e.ownership == Owned {
		err = release(e.key)
	}
	if e.ownsValue {
		if verr := release(e.value); verr != nil && err == nil {
			err = verr
		}
	}
	var zk K
	var zv V
	e.key, e.value = zk, zv
	e.ownsValue = false
	e.removed = true
	return err
}

func release(v any) error {
	if r, ok := v.(Releaser); ok {
		return r.Release()
	}
	return nil
}

func clone[T any](v T) T {
	if b, ok := any(v).([]byte); ok {
		return any(bytes.Clone(b)).(T)
	}
	return v
}
