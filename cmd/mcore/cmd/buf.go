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
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meterlink/mcore/stream"
	"github.com/meterlink/mcore/streamfile"
	"github.com/meterlink/mcore/streamproc"
)

var (
	bufPageSize    int
	bufMetricsAddr string
	bufWithHeader  bool
)

func init() {
	bufCopyCmd.Flags().IntVar(&bufPageSize, "page-size", streamproc.DefaultPageSize, "page size of the buffered copy, in bytes")
	bufCopyCmd.Flags().StringVar(&bufMetricsAddr, "metrics-addr", "", "serve /metrics on this address while copying; the server stops when the copy ends; empty disables")
	bufCopyCmd.Flags().BoolVar(&bufWithHeader, "with-header", false, "reserve a page-size marker ahead of the copied data, so a later open can confirm the page size it was written with")
	bufCmd.AddCommand(bufCopyCmd)
	RootCmd.AddCommand(bufCmd)
}

var bufCmd = &cobra.Command{
	Use:   "buf",
	Short: "exercise the buffered page-cache stream processor",
}

var bufCopyCmd = &cobra.Command{
	Use:   "copy <src> <dst>",
	Short: "copy src to dst through a streamproc.Buffered page cache",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		src, dst := args[0], args[1]

		in := streamfile.New()
		if err := in.Open(src, stream.ReadOnly, stream.SharingAllowRead); err != nil {
			return err
		}
		defer in.Close()

		out := streamfile.New()
		if err := out.Open(dst, stream.ReadWrite|stream.Create|stream.Truncate, stream.SharingAllowNone); err != nil {
			return err
		}
		defer out.Close()

		headerSize := 0
		if bufWithHeader {
			headerSize = streamproc.HeaderMarkerSize
			if err := out.Write(streamproc.EncodeHeaderMarker(bufPageSize)); err != nil {
				return err
			}
		}
		buffered := streamproc.NewBuffered(out, bufPageSize, headerSize)

		reg := prometheus.NewRegistry()
		buffered.SetMetrics(streamproc.NewPrometheusMetrics(reg, "buf_copy"))

		if bufMetricsAddr != "" {
			http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				if err := http.ListenAndServe(bufMetricsAddr, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("metrics server stopped: %v", err)
				}
			}()
		}

		chunk := make([]byte, 32*1024)
		for {
			n, err := in.ReadAvailable(chunk)
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
			if werr := buffered.Write(chunk[:n]); werr != nil {
				return werr
			}
		}

		return buffered.Flush(false)
	},
}
