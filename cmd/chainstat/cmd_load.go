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
	"fmt"
	"io"
	"sort"

	"github.com/lupra/structs/hashtable"
	"github.com/spf13/cobra"
)

var cmdLoad = &cobra.Command{
	Use:   "load [flags] [FILE] ...",
	Short: "Load records and print the bucket distribution",
	Long: `
The "load" command reads key[=value] records, one per line, from the given
files (or stdin) into a hash table and prints the number of entries, the
number of buckets, how many buckets are empty, the longest chain and a
histogram of chain lengths. A record line may be at most 16 MiB long.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadOptions.seeded = cmd.Flags().Changed("seed")
		t, err := loadTable(loadOptions, args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer t.Close()
		return printStats(cmd.OutOrStdout(), collectStats(t))
	},
}

var loadOptions TableOptions

func init() {
	cmdRoot.AddCommand(cmdLoad)
	loadOptions.register(cmdLoad.Flags())
}

// Stats describe how entries are spread over the buckets of a table.
type Stats struct {
	Entries      int
	Buckets      int
	EmptyBuckets int
	LongestChain int
	// Histogram maps a chain length to the number of buckets whose chain
	// has that length. Buckets without entries count as length 0.
	Histogram map[int]int
}

func collectStats[K, V any](t *hashtable.Table[K, V]) Stats {
	lengths := make([]int, t.BucketCount())
	_ = t.Iterate(func(bucket int, _ *hashtable.Entry[K, V]) bool {
		lengths[bucket]++
		return true
	})

	s := Stats{
		Entries:   t.Len(),
		Buckets:   t.BucketCount(),
		Histogram: make(map[int]int),
	}
	for _, n := range lengths {
		if n == 0 {
			s.EmptyBuckets++
		}
		s.LongestChain = max(s.LongestChain, n)
		s.Histogram[n]++
	}
	return s
}

func printStats(w io.Writer, s Stats) error {
	var loadFactor float64
	if s.Buckets > 0 {
		loadFactor = float64(s.Entries) / float64(s.Buckets)
	}
	if _, err := fmt.Fprintf(w,
		"entries:       %d\nbuckets:       %d\nempty buckets: %d\nlongest chain: %d\nload factor:   %.2f\n",
		s.Entries, s.Buckets, s.EmptyBuckets, s.LongestChain, loadFactor); err != nil {
		return err
	}

	lengths := make([]int, 0, len(s.Histogram))
	for n := range s.Histogram {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	if _, err := fmt.Fprintln(w, "chain length histogram:"); err != nil {
		return err
	}
	for _, n := range lengths {
		if _, err := fmt.Fprintf(w, "  %4d: %d\n", n, s.Histogram[n]); err != nil {
			return err
		}
	}
	return nil
}
