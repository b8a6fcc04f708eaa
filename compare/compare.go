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

// Package compare defines the three-way comparator shared by the structures
// in this module. A comparator returns a negative number when a sorts before
// b, zero when they are equal and a positive number when a sorts after b.
// The hash table only ever tests the result against zero.
package compare

import (
	"bytes"
	"strings"

	"golang.org/x/exp/constraints"
)

// Func is a three-way comparator.
type Func[T any] func(a, b T) int

// Strings compares strings lexically.
func Strings(a, b string) int {
	return strings.Compare(a, b)
}

// Bytes compares byte slices lexically. A nil slice equals an empty one.
func Bytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Ordered compares values of any ordered type with < and >.
func Ordered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Pointers lifts cmp to pointers. A nil pointer sorts before any non-nil
// pointer and two nil pointers are equal.
func Pointers[T any](cmp Func[T]) Func[*T] {
	return func(a, b *T) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		}
		return cmp(*a, *b)
	}
}

// Reverse inverts the order of cmp.
func Reverse[T any](cmp Func[T]) Func[T] {
	return func(a, b T) int {
		return cmp(b, a)
	}
}

// Equal reports whether cmp considers a and b equal.
func Equal[T any](cmp Func[T], a, b T) bool {
	return cmp(a, b) == 0
}
