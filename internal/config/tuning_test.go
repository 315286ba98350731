package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmptyTuningConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyTuningConfig()

	assert.Equal(t, trace.DefaultTraceMinDist, cfg.GetTraceMinDist())
	assert.Equal(t, trace.DefaultTraceMaxPoints, cfg.GetTraceMaxPoints())
	assert.InDelta(t, trace.DefaultMatchMaxHeadingDelta, cfg.GetMatchMaxHeadingDelta(), 1e-12)

	if diff := cmp.Diff(trace.DefaultTraceConfig(), cfg.ToTraceConfig()); diff != "" {
		t.Errorf("ToTraceConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial config keeps defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `{"trace_min_dist": 5, "trace_max_points": 32}`)

		cfg, err := LoadTuningConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 5.0, cfg.GetTraceMinDist())
		assert.Equal(t, 32, cfg.GetTraceMaxPoints())
		assert.Equal(t, trace.DefaultTraceMaxDist, cfg.GetTraceMaxDist())
	})

	t.Run("heading deltas are converted to radians", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `{"trace_max_heading_delta_deg": 90, "match_max_heading_delta_deg": 120}`)

		cfg, err := LoadTuningConfig(path)
		require.NoError(t, err)

		assert.InDelta(t, math.Pi/2, cfg.GetTraceMaxHeadingDelta(), 1e-12)
		assert.InDelta(t, 2*math.Pi/3, cfg.GetMatchMaxHeadingDelta(), 1e-12)
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		_, err := LoadTuningConfig(path)
		assert.Error(t, err)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `{"trace_min_dist": `)

		_, err := LoadTuningConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative distance", `{"trace_min_dist": -1}`, "trace_min_dist"},
		{"min above max", `{"trace_min_dist": 300, "trace_max_dist": 200}`, "trace_min_dist"},
		{"too few points", `{"trace_max_points": 1}`, "trace_max_points"},
		{"quality out of range", `{"match_min_quality": 1.5}`, "match_min_quality"},
		{"heading delta out of range", `{"match_max_heading_delta_deg": 200}`, "match_max_heading_delta_deg"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tc.content)

			_, err := LoadTuningConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
