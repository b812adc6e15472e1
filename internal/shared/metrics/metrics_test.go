package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SweepScanned.WithLabelValues("visitor").Add(3)
	m.SweepRuns.Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SweepScanned.WithLabelValues("visitor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepRuns))

	// a second registry must not panic on duplicate names
	assert.NotPanics(t, func() { NewNop() })
}
