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

// Package hashtable is a closed addressed (separate chaining) hash table.
//
// # Layout
//
// A Table owns an index of N buckets. Each bucket is either empty or holds a
// doubly-linked chain (see package list) of the entries whose keys hash to
// that bucket. The bucket of a key is hash(key) % N. Chains are allocated
// lazily on the first insertion into a bucket and stay allocated, possibly
// empty, until the table is rehashed or closed.
//
//	 index (N=4)
//	+---+
//	| 0 | --> [k3=v3] <-> [k7=v7]
//	+---+
//	| 1 | --> nil
//	+---+
//	| 2 | --> [k2=v2]
//	+---+
//	| 3 | --> (empty chain)
//	+---+
//
// Lookups scan the key's chain comparing keys with the table's comparator,
// so the cost of an operation is proportional to the chain length. The
// table never resizes itself: the caller decides when to Rehash to a
// different bucket count, for example once Len() / BucketCount() grows past
// the load factor it is willing to tolerate.
//
// # Hashing and comparison
//
// String and []byte keys are hashed with seeded MurmurHash3 and compared
// bytewise by default. Any other key type needs a Hasher and a comparator,
// supplied with WithHash and WithCompare, or WithComparableKeys for
// comparable types. The default seed is drawn once per process (see
// hashing.DefaultSeed) unless WithSeed fixes it.
//
// # Entries
//
// Every stored key/value pair is an Entry tagged Borrowed or Owned. Set
// stores Borrowed entries. CopyEntry builds Owned entries, whose payloads
// the table releases (see Releaser) when they are deleted, overwritten or
// the table is closed.
package hashtable

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lupra/structs/compare"
	"github.com/lupra/structs/hashing"
	"github.com/lupra/structs/list"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type chain[K, V any] struct {
	list.List[*Entry[K, V]]
}

// Table is a hash table mapping keys to values with Set, Get, Delete, Rehash
// and All operations. The zero value is not usable until Init is called;
// until then every operation fails with ErrNotInitialized.
//
// A Table is NOT goroutine-safe.
type Table[K, V any] struct {
	// The index of buckets. A nil slot is a bucket that has never been
	// inserted into. A nil index is an uninitialized or closed table.
	index []*chain[K, V]
	// The number of entries across all chains.
	used int
	hash Hasher[K]
	cmp  compare.Func[K]
	// newHash builds the default hasher once the seed is known.
	newHash     func(seed uint32) (Hasher[K], bool)
	seed        uint32
	seeded      bool
	legacyIndex bool
	logger      log.FieldLogger
	// The number of Iterate calls in progress. Rehash leaves the old chains
	// intact while it is non-zero so that those calls can finish walking them.
	iters int
}

// New constructs a new Table with the specified number of buckets.
func New[K, V any](buckets int, options ...Option[K, V]) (*Table[K, V], error) {
	t := &Table[K, V]{}
	if err := t.Init(buckets, options...); err != nil {
		return nil, err
	}
	return t, nil
}

// Init initializes a Table with the specified number of buckets, discarding
// any previous contents without releasing them.
func (t *Table[K, V]) Init(buckets int, options ...Option[K, V]) error {
	*t = Table[K, V]{}
	for _, op := range options {
		op.apply(t)
	}
	if t.logger == nil {
		t.logger = log.StandardLogger()
	}
	if !t.seeded {
		t.seed = hashing.DefaultSeed()
	}

	if err := t.checkBucketCount(buckets); err != nil {
		return err
	}
	if t.hash == nil {
		newHash := t.newHash
		if newHash == nil {
			newHash = defaultHasher[K]
		}
		h, ok := newHash(t.seed)
		if !ok {
			return errors.Wrapf(ErrNoDefaultHasher, "%T", *new(K))
		}
		t.hash = h
	}
	if t.cmp == nil {
		cmp, ok := defaultCompare[K]()
		if !ok {
			return errors.Wrapf(ErrNoDefaultCompare, "%T", *new(K))
		}
		t.cmp = cmp
	}

	t.index = make([]*chain[K, V], buckets)
	t.checkInvariants()
	return nil
}

func (t *Table[K, V]) checkBucketCount(buckets int) error {
	lo := 1
	if t.legacyIndex {
		lo = 2
	}
	if buckets < lo || uint64(buckets) > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidBucketCount, "%d buckets (min %d)", buckets, lo)
	}
	return nil
}

// initialized reports whether the table can be used, logging a usage error
// on behalf of op if it can't.
func (t *Table[K, V]) initialized(op string) bool {
	if t.index != nil {
		return true
	}
	t.log().WithField("op", op).Error(ErrNotInitialized)
	return false
}

func (t *Table[K, V]) log() log.FieldLogger {
	if t.logger == nil {
		return log.StandardLogger()
	}
	return t.logger
}

// bucketIndex returns the index of the bucket for key.
func (t *Table[K, V]) bucketIndex(key K) int {
	n := uint32(len(t.index))
	h := t.hash.Hash(key, n)
	if t.legacyIndex {
		return int(h % (n - 1))
	}
	return int(h % n)
}

// find returns the first entry in c matching key.
func (t *Table[K, V]) find(c *chain[K, V], key K) *Entry[K, V] {
	if c == nil {
		return nil
	}
	var found *Entry[K, V]
	c.All(func(_ int, e *Entry[K, V]) bool {
		if t.cmp(e.key, key) == 0 {
			found = e
			return false
		}
		return true
	})
	return found
}

// Set inserts a Borrowed entry for key, overwriting the value of the
// existing entry if the key is already present. Overwriting reuses the
// existing entry, so its ownership is unchanged.
func (t *Table[K, V]) Set(key K, value V) error {
	if !t.initialized("set") {
		return ErrNotInitialized
	}
	i := t.bucketIndex(key)
	if e := t.find(t.index[i], key); e != nil {
		return t.update(e, value, false)
	}
	t.insert(i, NewEntry(key, value))
	return nil
}

// SetEntry inserts entry into the table as is. If an entry with an equal key
// is already present its value is replaced by entry's value and entry itself
// is discarded. When entry is Owned the existing entry takes over the
// release of the value and the copy of the key held by entry is released.
func (t *Table[K, V]) SetEntry(entry *Entry[K, V]) error {
	if !t.initialized("set-entry") {
		return ErrNotInitialized
	}
	if entry == nil {
		return ErrNilEntry
	}
	i := t.bucketIndex(entry.key)
	if e := t.find(t.index[i], entry.key); e != nil {
		if e == entry {
			return nil
		}
		owned := entry.ownsValue
		var result *multierror.Error
		if err := t.update(e, entry.value, owned); err != nil {
			result = multierror.Append(result, err)
		}
		if entry.ownership == Owned {
			if err := release(entry.key); err != nil {
				result = multierror.Append(result, errors.Wrap(err, "release discarded key"))
			}
		}
		var zk K
		var zv V
		entry.key, entry.value, entry.ownsValue, entry.removed = zk, zv, false, true
		return result.ErrorOrNil()
	}
	t.insert(i, entry)
	return nil
}

func (t *Table[K, V]) update(e *Entry[K, V], value V, owned bool) error {
	err := e.replaceValue(value, owned)
	t.checkInvariants()
	return errors.Wrap(err, "release replaced value")
}

// insert appends entry to the chain of bucket i, starting a new chain if the
// bucket has none.
func (t *Table[K, V]) insert(i int, entry *Entry[K, V]) {
	c := t.index[i]
	if c == nil {
		c = &chain[K, V]{}
		t.index[i] = c
	}
	c.PushTail(entry)
	t.used++
	t.checkInvariants()
}

// Get retrieves the value from the table for the specified key, returning
// ok=false if the key is not present.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	e, ok := t.GetEntry(key)
	if !ok {
		return value, false
	}
	return e.value, true
}

// GetEntry retrieves the entry for the specified key, returning ok=false if
// the key is not present.
func (t *Table[K, V]) GetEntry(key K) (*Entry[K, V], bool) {
	if !t.initialized("get") {
		return nil, false
	}
	c := t.index[t.bucketIndex(key)]
	if c == nil || c.Len() == 0 {
		return nil, false
	}
	e := t.find(c, key)
	return e, e != nil
}

// Delete removes every entry whose key equals key and returns the number
// removed, which is 1 unless a custom comparator let equal keys in twice.
// It returns ErrNotFound if nothing was removed. Owned payloads of removed
// entries are released.
func (t *Table[K, V]) Delete(key K) (int, error) {
	if !t.initialized("delete") {
		return 0, ErrNotInitialized
	}

	i := t.bucketIndex(key)
	c := t.index[i]
	if c == nil || c.Len() == 0 {
		t.log().WithField("bucket", i).Debug("hash table has no entry at bucket")
		return 0, ErrNotFound
	}

	var removed int
	var result *multierror.Error
	for pos := 0; pos < c.Len(); {
		e, err := c.At(pos)
		if err != nil {
			return removed, errors.Wrap(err, "scan chain")
		}
		if t.cmp(e.key, key) != 0 {
			pos++
			continue
		}
		if _, err := c.DeleteAt(pos); err != nil {
			t.used -= removed
			return removed, errors.Wrap(err, "delete chain node")
		}
		removed++
		if err := e.release(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	t.used -= removed
	t.checkInvariants()

	if removed == 0 {
		t.log().WithField("bucket", i).Debug("hash table has no matching entry in bucket")
		return 0, ErrNotFound
	}
	return removed, result.ErrorOrNil()
}

// Rehash rebuilds the index with the specified number of buckets,
// re-inserting every entry by walking the old buckets in order and each
// chain from head to tail. Entries are moved, not copied, so their identity
// and ownership are preserved. The old chains are cleared once drained.
//
// If an entry cannot be re-inserted Rehash returns an error wrapping
// ErrCorrupt and the table is left partially rebuilt.
func (t *Table[K, V]) Rehash(buckets int) error {
	if !t.initialized("rehash") {
		return ErrNotInitialized
	}
	if err := t.checkBucketCount(buckets); err != nil {
		return err
	}

	old := t.index
	t.index = make([]*chain[K, V], buckets)
	t.used = 0

	for i, c := range old {
		if c == nil {
			continue
		}
		var err error
		c.All(func(_ int, e *Entry[K, V]) bool {
			err = t.SetEntry(e)
			return err == nil
		})
		if err != nil {
			t.log().WithError(err).WithFields(log.Fields{
				"old-buckets": len(old),
				"new-buckets": buckets,
				"bucket":      i,
			}).Error("re-inserting entry failed during rehash")
			return multierror.Append(
				errors.Wrapf(ErrCorrupt, "rehash %d -> %d", len(old), buckets), err)
		}
		if t.iters == 0 {
			c.Clear()
			old[i] = nil
		}
	}

	t.checkInvariants()
	return nil
}

// Iterate calls visit sequentially for each entry along with the index of
// its bucket. Buckets are visited in ascending order and each chain from
// head to tail. If visit returns false, iteration stops. The table can be
// mutated during iteration: entries deleted before they are reached are
// skipped and every other entry present when Iterate was called is visited
// exactly once, even across a Rehash. Entries inserted during iteration may
// or may not be visited. The bucket passed to visit is the one the entry was
// in when Iterate was called.
func (t *Table[K, V]) Iterate(visit func(bucket int, e *Entry[K, V]) bool) error {
	if !t.initialized("iterate") {
		return ErrNotInitialized
	}
	// Snapshot the index so that iteration remains well defined if the table
	// is rehashed during iteration.
	index := t.index
	t.iters++
	defer func() { t.iters-- }()
	for i, c := range index {
		if c == nil {
			continue
		}
		stop := false
		c.All(func(_ int, e *Entry[K, V]) bool {
			if e == nil {
				// The chain was cleared by a close inside visit.
				return false
			}
			if e.removed {
				return true
			}
			stop = !visit(i, e)
			return !stop
		})
		if stop {
			break
		}
	}
	return nil
}

// All calls yield sequentially for each key and value present in the table,
// in the same order as Iterate. If yield returns false, iteration stops.
func (t *Table[K, V]) All(yield func(key K, value V) bool) {
	_ = t.Iterate(func(_ int, e *Entry[K, V]) bool {
		return yield(e.key, e.value)
	})
}

// Keys returns a snapshot of the keys in iteration order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, t.used)
	t.All(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns a snapshot of the values in iteration order. The i'th value
// belongs to the i'th key returned by Keys.
func (t *Table[K, V]) Values() []V {
	values := make([]V, 0, t.used)
	t.All(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return t.used
}

// BucketCount returns the number of buckets in the index.
func (t *Table[K, V]) BucketCount() int {
	return len(t.index)
}

// Close releases every entry according to its ownership, clears every chain
// and drops the index. It is invalid to use a Table after it has been
// closed; subsequent operations, including Close, fail with
// ErrNotInitialized. Errors from releasing owned payloads are combined into
// the result, but all entries are released regardless.
func (t *Table[K, V]) Close() error {
	if t.index == nil {
		return ErrNotInitialized
	}
	var result *multierror.Error
	for i, c := range t.index {
		if c == nil {
			continue
		}
		c.All(func(_ int, e *Entry[K, V]) bool {
			if err := e.release(); err != nil {
				result = multierror.Append(result, err)
			}
			return true
		})
		c.Clear()
		t.index[i] = nil
	}
	t.index = nil
	t.used = 0
	return result.ErrorOrNil()
}

func (t *Table[K, V]) checkInvariants() {
	if invariants {
		var used int
		for i, c := range t.index {
			if c == nil {
				continue
			}
			used += c.Len()
			c.All(func(pos int, e *Entry[K, V]) bool {
				if b := t.bucketIndex(e.key); b != i {
					panic(fmt.Sprintf("invariant failed: bucket(%d)[%d]: %v belongs in bucket %d\n%s",
						i, pos, e.key, b, t.debugString()))
				}
				return true
			})
		}
		if used != t.used {
			panic(fmt.Sprintf("invariant failed: found %d entries, but used count is %d\n%s",
				used, t.used, t.debugString()))
		}
	}
}

func (t *Table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "buckets=%d  used=%d  legacy-index=%t\n", len(t.index), t.used, t.legacyIndex)
	for i, c := range t.index {
		switch {
		case c == nil:
			fmt.Fprintf(&buf, "  %4d: nil\n", i)
		case c.Len() == 0:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		default:
			fmt.Fprintf(&buf, "  %4d:", i)
			c.All(func(_ int, e *Entry[K, V]) bool {
				fmt.Fprintf(&buf, " [%v=%v %s]", e.key, e.value, e.ownership)
				return true
			})
			buf.WriteString("\n")
		}
	}
	return buf.String()
}
