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

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cmdGet = &cobra.Command{
	Use:   "get [flags] KEY ...",
	Short: "Load records and print the values of keys",
	Long: `
The "get" command loads key[=value] records from the files named by --input
(or stdin) and prints "key=value" for every requested key. Keys that are not
present are reported on stderr.

EXIT STATUS
===========

Exit status is 0 if every key was found.
Exit status is 1 if a key was missing or the records could not be loaded.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		getOptions.seeded = cmd.Flags().Changed("seed")
		t, err := loadTable(getOptions.TableOptions, getOptions.Inputs, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer t.Close()

		var missing int
		for _, key := range args {
			value, ok := t.Get(key)
			if !ok {
				log.WithField("key", key).Warn("key not found")
				missing++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
		}
		if missing > 0 {
			return errors.Errorf("%d of %d keys not found", missing, len(args))
		}
		return nil
	},
}

// GetOptions bundle the options of the get command.
type GetOptions struct {
	TableOptions
	Inputs []string
}

var getOptions GetOptions

func init() {
	cmdRoot.AddCommand(cmdGet)

	f := cmdGet.Flags()
	getOptions.register(f)
	f.StringSliceVarP(&getOptions.Inputs, "input", "i", nil, "read records from `file` (default: stdin)")
}
