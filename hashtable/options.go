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

import (
	"github.com/dolthub/maphash"
	"github.com/lupra/structs/compare"
	"github.com/lupra/structs/hashing"
	log "github.com/sirupsen/logrus"
)

// Option configures a Table while it is being created.
type Option[K, V any] interface {
	apply(t *Table[K, V])
}

// Hasher maps a key to a 32-bit hash. buckets is the current bucket count,
// which a Hasher may use or ignore; the table reduces the result modulo the
// bucket count itself.
type Hasher[K any] interface {
	Hash(key K, buckets uint32) uint32
}

// HashFunc adapts an ordinary function to the Hasher interface.
type HashFunc[K any] func(key K, buckets uint32) uint32

// Hash calls f(key, buckets).
func (f HashFunc[K]) Hash(key K, buckets uint32) uint32 {
	return f(key, buckets)
}

type hashOption[K, V any] struct {
	hash Hasher[K]
}

func (op hashOption[K, V]) apply(t *Table[K, V]) {
	t.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a
// Table[K,V].
func WithHash[K, V any](hash Hasher[K]) Option[K, V] {
	return hashOption[K, V]{hash}
}

type compareOption[K, V any] struct {
	cmp compare.Func[K]
}

func (op compareOption[K, V]) apply(t *Table[K, V]) {
	t.cmp = op.cmp
}

// WithCompare is an option to specify the comparator used to decide whether
// two keys are equal. Only a zero result is treated as equality.
func WithCompare[K, V any](cmp compare.Func[K]) Option[K, V] {
	return compareOption[K, V]{cmp}
}

type seedOption[K, V any] uint32

func (op seedOption[K, V]) apply(t *Table[K, V]) {
	t.seed = uint32(op)
	t.seeded = true
}

// WithSeed is an option to specify the seed for the default hash functions.
// Without it the table uses hashing.DefaultSeed().
func WithSeed[K, V any](seed uint32) Option[K, V] {
	return seedOption[K, V](seed)
}

type loggerOption[K, V any] struct {
	logger log.FieldLogger
}

func (op loggerOption[K, V]) apply(t *Table[K, V]) {
	t.logger = op.logger
}

// WithLogger is an option to specify where usage errors and failures are
// logged. The default is the logrus standard logger.
func WithLogger[K, V any](logger log.FieldLogger) Option[K, V] {
	return loggerOption[K, V]{logger}
}

type legacyIndexOption[K, V any] struct{}

func (legacyIndexOption[K, V]) apply(t *Table[K, V]) {
	t.legacyIndex = true
}

// WithLegacyBucketIndex is an option to place keys with hash%(buckets-1)
// rather than hash%buckets. This reproduces the layout of tables built by
// older versions of this package, in which the last bucket is never used.
// Tables using it need at least 2 buckets.
func WithLegacyBucketIndex[K, V any]() Option[K, V] {
	return legacyIndexOption[K, V]{}
}

type xxhashOption[K, V any] struct{}

func (xxhashOption[K, V]) apply(t *Table[K, V]) {
	t.newHash = func(seed uint32) (Hasher[K], bool) {
		return bytesHasher[K](seed, hashing.XXHash32, hashing.XXHash32String)
	}
}

// WithXXHash is an option to hash string and []byte keys with xxHash
// instead of MurmurHash3.
func WithXXHash[K, V any]() Option[K, V] {
	return xxhashOption[K, V]{}
}

type comparableKeysOption[K comparable, V any] struct{}

func (comparableKeysOption[K, V]) apply(t *Table[K, V]) {
	h := maphash.NewHasher[K]()
	t.hash = HashFunc[K](func(key K, _ uint32) uint32 {
		return hashing.Fold64(h.Hash(key))
	})
	t.cmp = func(a, b K) int {
		if a == b {
			return 0
		}
		return 1
	}
}

// WithComparableKeys is an option for tables whose keys are any comparable
// type. Keys are hashed with the Go runtime's hash function for K and
// compared with ==.
func WithComparableKeys[K comparable, V any]() Option[K, V] {
	return comparableKeysOption[K, V]{}
}

// bytesHasher returns a Hasher for K when K is string or []byte.
func bytesHasher[K any](
	seed uint32, sum func([]byte, uint32) uint32, sumString func(string, uint32) uint32,
) (Hasher[K], bool) {
	var k K
	switch any(k).(type) {
	case string:
		return HashFunc[K](func(key K, _ uint32) uint32 {
			return sumString(any(key).(string), seed)
		}), true
	case []byte:
		return HashFunc[K](func(key K, _ uint32) uint32 {
			return sum(any(key).([]byte), seed)
		}), true
	}
	return nil, false
}

func defaultHasher[K any](seed uint32) (Hasher[K], bool) {
	return bytesHasher[K](seed, hashing.Murmur3, hashing.Murmur3String)
}

func defaultCompare[K any]() (compare.Func[K], bool) {
	var k K
	switch any(k).(type) {
	case string:
		return any(compare.Func[string](compare.Strings)).(compare.Func[K]), true
	case []byte:
		return any(compare.Func[[]byte](compare.Bytes)).(compare.Func[K]), true
	}
	return nil, false
}
