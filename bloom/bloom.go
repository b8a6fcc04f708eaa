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

// Package bloom implements a Bloom filter. The k bit positions of a key are
// derived from two seeded MurmurHash3 sums with the Kirsch and Mitzenmacher
// construction: position i is (h1 + i*h2) mod m.
package bloom

import (
	"github.com/lupra/structs/bitarray"
	"github.com/lupra/structs/hashing"
	"github.com/pkg/errors"
)

const (
	// DefaultHashes is the number of bit positions per key used by New.
	DefaultHashes = 2

	seed1 = 0x5f3759df
	seed2 = 0x9e3779b9
)

// ErrNoHashes is returned when a filter with no hash functions is requested.
var ErrNoHashes = errors.New("bloom filter needs at least one hash")

// Filter is a Bloom filter. Check never reports false for a key that was
// added.
//
// A Filter is NOT goroutine-safe.
type Filter struct {
	bits   *bitarray.BitArray
	hashes uint32
}

// New returns a filter of at least size bits using DefaultHashes hashes
// per key. The size is rounded up to a multiple of 32.
func New(size uint32) (*Filter, error) {
	return NewWithHashes(size, DefaultHashes)
}

// NewWithHashes is like New but sets k bit positions per key.
func NewWithHashes(size, k uint32) (*Filter, error) {
	if k == 0 {
		return nil, ErrNoHashes
	}
	bits, err := bitarray.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "bloom filter")
	}
	return &Filter{bits: bits, hashes: k}, nil
}

// Len returns the number of bits in the filter.
func (f *Filter) Len() uint32 {
	return f.bits.Len()
}

// Hashes returns the number of bit positions set per key.
func (f *Filter) Hashes() uint32 {
	return f.hashes
}

// FillCount returns the number of set bits.
func (f *Filter) FillCount() int {
	return f.bits.Count()
}

// Add adds key to the filter.
func (f *Filter) Add(key []byte) {
	f.add(hashing.Murmur3(key, seed1), hashing.Murmur3(key, seed2))
}

// AddString adds key to the filter.
func (f *Filter) AddString(key string) {
	f.add(hashing.Murmur3String(key, seed1), hashing.Murmur3String(key, seed2))
}

// Check reports whether key may have been added. False positives are
// possible; false negatives are not.
func (f *Filter) Check(key []byte) bool {
	return f.check(hashing.Murmur3(key, seed1), hashing.Murmur3(key, seed2))
}

// CheckString reports whether key may have been added.
func (f *Filter) CheckString(key string) bool {
	return f.check(hashing.Murmur3String(key, seed1), hashing.Murmur3String(key, seed2))
}

// Reset removes every key from the filter.
func (f *Filter) Reset() {
	f.bits.Reset()
}

func (f *Filter) add(h1, h2 uint32) {
	m := f.bits.Len()
	for i := uint32(0); i < f.hashes; i++ {
		f.bits.Set((h1 + i*h2) % m)
	}
}

func (f *Filter) check(h1, h2 uint32) bool {
	m := f.bits.Len()
	for i := uint32(0); i < f.hashes; i++ {
		if !f.bits.Test((h1 + i*h2) % m) {
			return false
		}
	}
	return true
}
