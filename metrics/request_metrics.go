// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chain4travel/nance/utils/rpc"
	"github.com/chain4travel/nance/utils/wrappers"
)

var _ rpc.Observer = (*requestMetrics)(nil)

// requestMetrics records outbound requests per remote endpoint. A status of 0
// means no response was received.
type requestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRequestMetrics(
	namespace string,
	registerer prometheus.Registerer,
) (*requestMetrics, error) {
	m := &requestMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_requests",
				Help:      "Number of requests sent to remote endpoints",
			},
			[]string{"endpoint", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_request_duration_seconds",
				Help:      "Time spent waiting for remote endpoints",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.requests),
		registerer.Register(m.duration),
	)
	return m, errs.Err
}

func (m *requestMetrics) Observe(endpoint string, status int, duration time.Duration) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
