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

package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lupra/structs/hashtable"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// TableOptions bundle the flags that shape the table records are loaded
// into.
type TableOptions struct {
	Buckets     int
	Rehash      int
	Hasher      string
	LegacyIndex bool
	Seed        uint32
	seeded      bool
}

func (opts *TableOptions) register(f *pflag.FlagSet) {
	f.IntVar(&opts.Buckets, "buckets", 64, "initial number of `buckets`")
	f.IntVar(&opts.Rehash, "rehash", 0, "rehash to `n` buckets after loading (0 to keep the initial count)")
	f.StringVar(&opts.Hasher, "hasher", "murmur3", "hash `function` (murmur3 or xxhash)")
	f.BoolVar(&opts.LegacyIndex, "legacy-index", false, "place keys with hash % (buckets-1)")
	f.Uint32Var(&opts.Seed, "seed", 0, "hash `seed` (default: random per process)")
}

func (opts *TableOptions) tableOptions() ([]hashtable.Option[string, string], error) {
	tableOpts := []hashtable.Option[string, string]{
		hashtable.WithLogger[string, string](log.StandardLogger()),
	}
	switch opts.Hasher {
	case "murmur3":
	case "xxhash":
		tableOpts = append(tableOpts, hashtable.WithXXHash[string, string]())
	default:
		return nil, errors.Errorf("--hasher: unknown hash function %q", opts.Hasher)
	}
	if opts.LegacyIndex {
		tableOpts = append(tableOpts, hashtable.WithLegacyBucketIndex[string, string]())
	}
	if opts.seeded {
		tableOpts = append(tableOpts, hashtable.WithSeed[string, string](opts.Seed))
	}
	return tableOpts, nil
}

// parseRecord splits a "key[=value]" line. Blank lines and lines starting
// with '#' hold no record.
func parseRecord(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, _ = strings.Cut(line, "=")
	return key, value, true
}

// maxRecordSize bounds the length of a single record line.
const maxRecordSize = 16 << 20

// loadRecords sets every record read from r into t and returns the number
// of records read.
func loadRecords(t *hashtable.Table[string, string], r io.Reader) (int, error) {
	var n int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxRecordSize)
	for sc.Scan() {
		key, value, ok := parseRecord(sc.Text())
		if !ok {
			continue
		}
		if err := t.Set(key, value); err != nil {
			return n, errors.Wrapf(err, "set %q", key)
		}
		n++
	}
	return n, errors.Wrap(sc.Err(), "read records")
}

// loadTable builds a table from opts and loads the records of every file
// into it, or of stdin when files is empty. "-" also names stdin.
func loadTable(opts TableOptions, files []string, stdin io.Reader) (*hashtable.Table[string, string], error) {
	tableOpts, err := opts.tableOptions()
	if err != nil {
		return nil, err
	}
	t, err := hashtable.New[string, string](opts.Buckets, tableOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "--buckets")
	}

	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		var n int
		if name == "-" {
			n, err = loadRecords(t, stdin)
		} else {
			n, err = loadFile(t, name)
		}
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		log.WithFields(log.Fields{"file": name, "records": n}).Debug("loaded records")
	}

	if opts.Rehash > 0 {
		if err := t.Rehash(opts.Rehash); err != nil {
			return nil, errors.Wrap(err, "--rehash")
		}
		log.WithField("buckets", opts.Rehash).Info("rehashed table")
	}
	return t, nil
}

func loadFile(t *hashtable.Table[string, string], name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return loadRecords(t, f)
}
