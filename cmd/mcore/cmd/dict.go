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
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meterlink/mcore/dict"
)

var dictUnsorted bool

func init() {
	dictCmd.AddCommand(dictParseCmd)
	dictParseCmd.Flags().BoolVar(&dictUnsorted, "unsorted", false, "render the dictionary in insertion order instead of sorted by key")
	RootCmd.AddCommand(dictCmd)
}

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "inspect mcore Dictionary textual forms",
}

var dictParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "parse a Dictionary (either grammar) and print it as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		d, err := dict.Parse(args[0])
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Key", "Kind", "Value"})
		for _, k := range d.AllKeys() {
			v, err := d.Item(k)
			if err != nil {
				return err
			}
			ks, _ := k.AsString()
			vs, _ := v.AsString()
			table.Append([]string{ks, v.Kind().String(), vs})
		}
		table.Render()

		var out string
		if dictUnsorted {
			out, err = d.AsStringUnsorted()
		} else {
			out, err = d.AsString()
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}
