package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/metrics"
)

func TestRecordAttempt(t *testing.T) {
	m := metrics.New()
	m.RecordAttempt(true, time.Second)
	m.RecordAttempt(false, 2*time.Second)
	m.RecordAttempt(true, time.Second)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	var observations uint64
	for _, family := range families {
		switch family.GetName() {
		case metrics.MetricNameGenerationAttempts:
			for _, metric := range family.GetMetric() {
				counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
			}
		case metrics.MetricNameAttemptDuration:
			observations = family.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, map[string]float64{"success": 2, "failure": 1}, counts)
	assert.Equal(t, uint64(3), observations)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordAttempt(true, time.Second)
		m.RecordSave(false)
	})
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.RecordSave(true)
	m.RecordSave(false)
	m.RecordSave(true)

	path := filepath.Join(t.TempDir(), "loot.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `loot_items_saved_total{result="new"} 2`)
	assert.Contains(t, string(data), `loot_items_saved_total{result="duplicate"} 1`)
}
