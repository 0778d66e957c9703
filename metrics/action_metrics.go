// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/utils/wrappers"
)

var _ actions.Visitor = (*actionMetrics)(nil)

type actionMetrics struct {
	numPayouts,
	numTransfers,
	numReserves,
	numCustomTransactions,
	numUnknown prometheus.Counter
}

func newActionMetrics(
	namespace string,
	registerer prometheus.Registerer,
) (*actionMetrics, error) {
	errs := wrappers.Errs{}
	m := &actionMetrics{
		numPayouts:            newActionMetric(namespace, "payout", registerer, &errs),
		numTransfers:          newActionMetric(namespace, "transfer", registerer, &errs),
		numReserves:           newActionMetric(namespace, "reserve", registerer, &errs),
		numCustomTransactions: newActionMetric(namespace, "custom_transaction", registerer, &errs),
		numUnknown:            newActionMetric(namespace, "unknown", registerer, &errs),
	}
	return m, errs.Err
}

func newActionMetric(
	namespace string,
	actionName string,
	registerer prometheus.Registerer,
	errs *wrappers.Errs,
) prometheus.Counter {
	actionMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      fmt.Sprintf("%s_actions_labeled", actionName),
		Help:      fmt.Sprintf("Number of %s actions labeled", actionName),
	})
	errs.Add(registerer.Register(actionMetric))
	return actionMetric
}

func (m *actionMetrics) Payout(*actions.Payout) error {
	m.numPayouts.Inc()
	return nil
}

func (m *actionMetrics) Transfer(*actions.Transfer) error {
	m.numTransfers.Inc()
	return nil
}

func (m *actionMetrics) Reserve(*actions.Reserve) error {
	m.numReserves.Inc()
	return nil
}

func (m *actionMetrics) CustomTransaction(*actions.CustomTransaction) error {
	m.numCustomTransactions.Inc()
	return nil
}

func (m *actionMetrics) Unknown(*actions.Unknown) error {
	m.numUnknown.Inc()
	return nil
}
