/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd implements the mcore CLI's cobra command tree: UID
// encode/decode, Dictionary round-tripping, and INI inspection, over
// the library packages in github.com/meterlink/mcore.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meterlink/mcore/mversion"
)

// Config holds the CLI's own ambient configuration, populated from
// persistent flags, mirroring ptp4u/server.Config's small flat
// settings struct.
type Config struct {
	LogLevel         string
	RespectValueType bool
}

var config Config

// RootCmd is mcore's main entry point.
var RootCmd = &cobra.Command{
	Use:   "mcore",
	Short: "inspect and manipulate mcore wire formats (UIDs, dictionaries, INI files)",
	Version: mversion.Current,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, err := log.ParseLevel(config.LogLevel)
		if err != nil {
			return fmt.Errorf("bad --log-level %q: %w", config.LogLevel, err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "warning", "logrus level (debug, info, warning, error)")
	RootCmd.PersistentFlags().BoolVar(&config.RespectValueType, "respect-value-type", true, "parse INI values as typed constants instead of raw strings")
}

// Execute is the CLI's main entry point.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
