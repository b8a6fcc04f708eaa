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

// Package search provides binary search over sorted slices.
package search

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// BinarySearch returns the index of needle in the ascending slice sorted, or
// -1 if it is absent. If needle occurs more than once any one of its indexes
// may be returned.
func BinarySearch[T constraints.Ordered](sorted []T, needle T) int {
	if i, ok := slices.BinarySearch(sorted, needle); ok {
		return i
	}
	return -1
}

// BinarySearchFunc is like BinarySearch but orders elements with cmp, which
// returns a negative number when elem sorts before needle, zero when they are
// equal and a positive number otherwise.
func BinarySearchFunc[T any](sorted []T, needle T, cmp func(elem, needle T) int) int {
	if i, ok := slices.BinarySearchFunc(sorted, needle, cmp); ok {
		return i
	}
	return -1
}
