package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	CatalogCache.WithLabelValues("hit").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(CatalogCache.WithLabelValues("hit")))

	// 重复注册应 panic
	assert.Panics(t, func() { RegisterCollectors(reg) })
}
