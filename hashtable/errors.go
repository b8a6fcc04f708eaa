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

import "github.com/pkg/errors"

var (
	// ErrNotInitialized is returned by every operation on a Table that was
	// never constructed or has already been closed.
	ErrNotInitialized = errors.New("hash table not initialized")
	// ErrInvalidBucketCount is returned when a bucket count cannot address
	// the index.
	ErrInvalidBucketCount = errors.New("invalid bucket count")
	// ErrNoDefaultHasher is returned when the key type has no default hash
	// function and none was configured.
	ErrNoDefaultHasher = errors.New("no default hasher for key type")
	// ErrNoDefaultCompare is returned when the key type has no default
	// comparator and none was configured.
	ErrNoDefaultCompare = errors.New("no default comparator for key type")
	// ErrNilEntry is returned by SetEntry when handed a nil entry.
	ErrNilEntry = errors.New("nil entry")
	// ErrNotFound is returned by Delete when no entry matched the key.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned when a rehash could not re-insert an entry. The
	// table is not restored to its previous state.
	ErrCorrupt = errors.New("hash table is corrupt")
)
