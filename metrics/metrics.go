// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/utils/rpc"
	"github.com/chain4travel/nance/utils/wrappers"
)

var _ Metrics = (*metrics)(nil)

type Metrics interface {
	rpc.Observer

	// Mark that the label of the given action was rendered.
	MarkLabeled(actions.Action) error
	// Mark that a proposal was uploaded, [update] is true for edits.
	MarkProposalUploaded(update bool)
	// Mark that a proposal was deleted.
	MarkProposalDeleted()
	// Mark that a vote was relayed to the hub.
	MarkVoteCast()
}

func New(
	namespace string,
	registerer prometheus.Registerer,
) (Metrics, error) {
	requests, err := newRequestMetrics(namespace, registerer)
	errs := wrappers.Errs{Err: err}
	actionMetrics, err := newActionMetrics(namespace, registerer)
	errs.Add(err)

	m := &metrics{
		requestMetrics: requests,
		actionMetrics:  actionMetrics,

		proposalsUploaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proposals_uploaded",
				Help:      "Number of proposals uploaded",
			},
			[]string{"kind"},
		),
		proposalsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_deleted",
			Help:      "Number of proposals deleted",
		}),
		votesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast",
			Help:      "Number of votes relayed to the snapshot hub",
		}),
	}
	errs.Add(
		registerer.Register(m.proposalsUploaded),
		registerer.Register(m.proposalsDeleted),
		registerer.Register(m.votesCast),
	)
	return m, errs.Err
}

type metrics struct {
	*requestMetrics

	actionMetrics *actionMetrics

	proposalsUploaded *prometheus.CounterVec
	proposalsDeleted  prometheus.Counter
	votesCast         prometheus.Counter
}

func (m *metrics) MarkLabeled(action actions.Action) error {
	return action.Visit(m.actionMetrics)
}

func (m *metrics) MarkProposalUploaded(update bool) {
	kind := "create"
	if update {
		kind = "update"
	}
	m.proposalsUploaded.WithLabelValues(kind).Inc()
}

func (m *metrics) MarkProposalDeleted() {
	m.proposalsDeleted.Inc()
}

func (m *metrics) MarkVoteCast() {
	m.votesCast.Inc()
}

// Noop discards every observation
var Noop Metrics = noop{}

type noop struct{}

func (noop) Observe(string, int, time.Duration) {}

func (noop) MarkLabeled(actions.Action) error { return nil }

func (noop) MarkProposalUploaded(bool) {}

func (noop) MarkProposalDeleted() {}

func (noop) MarkVoteCast() {}
