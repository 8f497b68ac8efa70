/*
Copyright © 2025 the xdmf authors.
This file is part of xdmf.

xdmf is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

xdmf is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with xdmf.  If not, see <http://www.gnu.org/licenses/>.
*/

package xdmf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects statistics about written documents.
type Metrics struct {
	Meshes         prometheus.Counter
	TimeSteps      prometheus.Counter
	Commits        prometheus.Counter
	CommitDuration prometheus.Histogram
	DocumentBytes  prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with reg.
// It returns nil if reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &Metrics{
		Meshes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "xdmf",
			Name:      "meshes_written_total",
			Help:      "Number of meshes written",
		}),
		TimeSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: "xdmf",
			Name:      "time_steps_written_total",
			Help:      "Number of time steps written",
		}),
		Commits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "xdmf",
			Name:      "document_commits_total",
			Help:      "Number of times a document was written to disk",
		}),
		CommitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "xdmf",
			Name:      "document_commit_duration_seconds",
			Help:      "Time to flush the heavy data and write the document",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		DocumentBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "xdmf",
			Name:      "document_size_bytes",
			Help:      "Size of the last written document",
		}),
	}
}

func (m *Metrics) meshWritten() {
	if m == nil {
		return
	}
	m.Meshes.Inc()
}

func (m *Metrics) timeStepWritten() {
	if m == nil {
		return
	}
	m.TimeSteps.Inc()
}

func (m *Metrics) committed(start time.Time, size int64) {
	if m == nil {
		return
	}
	m.Commits.Inc()
	m.CommitDuration.Observe(time.Since(start).Seconds())
	m.DocumentBytes.Set(float64(size))
}
