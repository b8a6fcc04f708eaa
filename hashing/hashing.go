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

// Package hashing provides the seeded, non-cryptographic 32-bit hash
// primitives used by the hash table and the bloom filter.
package hashing

import (
	"math/rand/v2"
	"sync"
	"unsafe"

	"github.com/OneOfOne/xxhash"
	"github.com/spaolacci/murmur3"
)

// Murmur3 returns the 32-bit MurmurHash3 (x86_32) of data.
func Murmur3(data []byte, seed uint32) uint32 {
	return murmur3.Sum32WithSeed(data, seed)
}

// Murmur3String is Murmur3 over the bytes of s without copying them.
func Murmur3String(s string, seed uint32) uint32 {
	return murmur3.Sum32WithSeed(stringBytes(s), seed)
}

// XXHash32 returns the 64-bit xxHash of data folded down to 32 bits.
func XXHash32(data []byte, seed uint32) uint32 {
	return fold(xxhash.Checksum64S(data, uint64(seed)))
}

// XXHash32String is XXHash32 over the bytes of s.
func XXHash32String(s string, seed uint32) uint32 {
	return fold(xxhash.ChecksumString64S(s, uint64(seed)))
}

// Fold64 folds a 64-bit hash into 32 bits by xoring its halves.
func Fold64(h uint64) uint32 {
	return fold(h)
}

func fold(h uint64) uint32 {
	return uint32(h>>32) ^ uint32(h)
}

var defaultSeed = sync.OnceValue(func() uint32 {
	return rand.Uint32()
})

// DefaultSeed returns the process-wide seed used by tables and filters that
// were not given one explicitly. It is drawn at random the first time it is
// requested and never changes afterwards. Concurrent first calls are safe
// and all observe the same value.
func DefaultSeed() uint32 {
	return defaultSeed()
}

// stringBytes returns the bytes backing s. The result must not be modified.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
