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

// Package bitarray implements a fixed-size array of bits packed into 32-bit
// words.
package bitarray

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

const wordBits = 32

// ErrZeroSize is returned when a bit array of no bits is requested.
var ErrZeroSize = errors.New("bit array size must be positive")

// ErrTooLarge is returned when the rounded-up size does not fit in 32 bits.
var ErrTooLarge = errors.New("bit array size too large")

// MaxSize is the largest size New accepts.
const MaxSize = math.MaxUint32 &^ (wordBits - 1)

// BitArray is a fixed-size array of bits. Bit indexes wrap modulo Len().
//
// A BitArray is NOT goroutine-safe.
type BitArray struct {
	words []uint32
	size  uint32
}

// New returns a bit array of at least size bits, all clear. The size is
// rounded up to a multiple of 32, so it may not exceed MaxSize.
func New(size uint32) (*BitArray, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	if size > MaxSize {
		return nil, errors.Wrapf(ErrTooLarge, "%d bits (max %d)", size, uint32(MaxSize))
	}
	n := (uint64(size) + wordBits - 1) / wordBits
	return &BitArray{
		words: make([]uint32, n),
		size:  uint32(n * wordBits),
	}, nil
}

// Len returns the number of bits in the array.
func (a *BitArray) Len() uint32 {
	return a.size
}

func (a *BitArray) locate(k uint32) (word int, mask uint32) {
	k %= a.size
	return int(k / wordBits), 1 << (k % wordBits)
}

// Set sets bit k.
func (a *BitArray) Set(k uint32) {
	w, m := a.locate(k)
	a.words[w] |= m
}

// Clear clears bit k.
func (a *BitArray) Clear(k uint32) {
	w, m := a.locate(k)
	a.words[w] &^= m
}

// Test reports whether bit k is set.
func (a *BitArray) Test(k uint32) bool {
	w, m := a.locate(k)
	return a.words[w]&m != 0
}

// Count returns the number of set bits.
func (a *BitArray) Count() int {
	var n int
	for _, w := range a.words {
		n += bits.OnesCount32(w)
	}
	return n
}

// Reset clears every bit.
func (a *BitArray) Reset() {
	clear(a.words)
}
