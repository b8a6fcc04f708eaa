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
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GlobalOptions hold the flags shared by every command.
type GlobalOptions struct {
	LogLevel  string
	LogFormat string
}

var globalOptions GlobalOptions

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "chainstat",
	Short: "Inspect how keys spread over the buckets of a chained hash table",
	Long: `
chainstat loads key[=value] records into a separate chaining hash table and
reports how the entries are distributed over the buckets, so that bucket
counts and hash functions can be compared on real key sets.
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(globalOptions)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	f := cmdRoot.PersistentFlags()
	f.StringVar(&globalOptions.LogLevel, "log-level", "warn", "log `level` (trace, debug, info, warn, error)")
	f.StringVar(&globalOptions.LogFormat, "log-format", "text", "log `format` (text or json)")
}

func setupLogging(opts GlobalOptions) error {
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return errors.Wrap(err, "--log-level")
	}
	log.SetLevel(level)

	switch opts.LogFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("--log-format: unknown format %q", opts.LogFormat)
	}
	log.SetOutput(os.Stderr)
	return nil
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
