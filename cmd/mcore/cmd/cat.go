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
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meterlink/mcore/ini"
	"github.com/meterlink/mcore/stream"
	"github.com/meterlink/mcore/streamfile"
)

var catExport bool

func init() {
	catCmd.Flags().BoolVar(&catExport, "export", false, "also print the file re-rendered through ini.ExportBuffer")
	RootCmd.AddCommand(catCmd)
}

var catCmd = &cobra.Command{
	Use:   "cat <path.ini>",
	Short: "read an INI-formatted config file and print its entries as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := args[0]

		f := streamfile.New()
		if err := f.Open(path, stream.ReadOnly, stream.SharingAllowRead); err != nil {
			return err
		}
		defer f.Close()

		r := ini.NewReader(f, path, config.RespectValueType)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Section", "Name", "Value"})

		var section string
		var entries []ini.Entry
		for {
			entry, err := r.Next()
			if err != nil {
				return err
			}
			if entry.Kind == ini.Eof {
				break
			}
			entries = append(entries, entry)
			switch entry.Kind {
			case ini.Key:
				section = entry.Key
			case ini.NameValue:
				vs, err := entry.Value.AsString()
				if err != nil {
					return err
				}
				table.Append([]string{section, entry.Name, vs})
			}
		}
		table.Render()

		if catExport {
			exported, err := ini.ExportCompat(entries)
			if err != nil {
				return err
			}
			buf, err := ini.ExportBuffer(exported)
			if err != nil {
				return err
			}
			if _, err := io.Copy(os.Stdout, buf); err != nil {
				return err
			}
		}

		fmt.Println()
		return nil
	},
}
