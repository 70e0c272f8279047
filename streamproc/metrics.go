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

package streamproc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewPrometheusMetrics builds a Metrics backed by a pair of registered
// prometheus.Counter collectors, the way sptp/stats.PrometheusExporter
// registers its own collectors against a registry. Name clashes (the
// same Buffered wired twice against one registry) reuse the already
// registered collector rather than failing.
func NewPrometheusMetrics(reg *prometheus.Registry, subsystem string) *Metrics {
	reads := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mcore",
		Subsystem: subsystem,
		Name:      "page_reads_total",
		Help:      "pages loaded from the backing stream",
	})
	if err := reg.Register(reads); err != nil {
		are := &prometheus.AlreadyRegisteredError{}
		if errors.As(err, are) {
			reads = are.ExistingCollector.(prometheus.Counter)
		}
	}

	writes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mcore",
		Subsystem: subsystem,
		Name:      "page_writebacks_total",
		Help:      "dirty pages flushed to the backing stream",
	})
	if err := reg.Register(writes); err != nil {
		are := &prometheus.AlreadyRegisteredError{}
		if errors.As(err, are) {
			writes = are.ExistingCollector.(prometheus.Counter)
		}
	}

	return &Metrics{PageReads: reads, PageWrites: writes}
}
