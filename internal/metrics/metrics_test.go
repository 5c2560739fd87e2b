package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/metrics"
)

func TestMetrics_OnChangeCountsByKindAndOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)

	m.OnChange(domain.ChangeEvent{Kind: domain.KindClient, Op: domain.ChangeCreated})
	m.OnChange(domain.ChangeEvent{Kind: domain.KindClient, Op: domain.ChangeCreated})
	m.OnChange(domain.ChangeEvent{Kind: domain.KindContract, Op: domain.ChangeRemoved})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StoreMutations.WithLabelValues("client", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreMutations.WithLabelValues("contract", "removed")))
}

func TestMetrics_RecordSearchLabelsEmptyFocus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)

	m.RecordSearch("", time.Millisecond)
	m.RecordSearch(domain.SectionClients, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchEvaluations.WithLabelValues("none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchEvaluations.WithLabelValues("clients")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.OnChange(domain.ChangeEvent{})
		m.RecordCoalesced()
		m.RecordLedger("add", nil)
		m.SetActiveSessions(3)
		_ = m.Handler()
	})
}
