package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewCountersRegistersWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounters(reg)
	require.NotNil(t, c)

	c.Accepts.Inc()
	c.Connects.Inc()
	c.Drops.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
