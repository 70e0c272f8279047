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

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/meterlink/mcore/iso8825"
)

var uidRelative bool

func init() {
	uidEncodeCmd.Flags().BoolVar(&uidRelative, "relative", false, "encode/decode a relative UID")
	uidDecodeCmd.Flags().BoolVar(&uidRelative, "relative", false, "encode/decode a relative UID")
	uidCmd.AddCommand(uidEncodeCmd, uidDecodeCmd)
	RootCmd.AddCommand(uidCmd)
}

var uidCmd = &cobra.Command{
	Use:   "uid",
	Short: "encode or decode ISO 8825 object identifiers",
}

var uidEncodeCmd = &cobra.Command{
	Use:   "encode <dotted-uid>",
	Short: "encode a dotted-decimal UID to its binary form",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		enc, err := iso8825.EncodeUID(args[0])
		if err != nil {
			return err
		}
		fmt.Println(color.CyanString(hex.EncodeToString(enc)))
		return nil
	},
}

var uidDecodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "decode a binary UID to its dotted-decimal form",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		buf, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("bad hex input: %w", err)
		}
		uid, err := iso8825.DecodeUID(buf, uidRelative)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString(uid))
		return nil
	},
}
