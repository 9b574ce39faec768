package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun_WhenValidExpression_ThenReturnsNextFireTime(t *testing.T) {
	from := time.Date(2025, 11, 5, 10, 31, 0, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"@hourly", time.Date(2025, 11, 5, 11, 0, 0, 0, time.UTC)},
		{"*/5 * * * *", time.Date(2025, 11, 5, 10, 35, 0, 0, time.UTC)},
		{"0 0 3 * * *", time.Date(2025, 11, 6, 3, 0, 0, 0, time.UTC)},
		{"@daily", time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := NextRun(tt.expr, from)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextRun_WhenFromHasOffset_ThenResultIsUTC(t *testing.T) {
	from := time.Date(2025, 11, 5, 12, 31, 0, 0, time.FixedZone("CEST", 2*60*60))

	got, err := NextRun("@hourly", from)

	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2025, 11, 5, 11, 0, 0, 0, time.UTC), got)
}

func TestParseSchedule_WhenInvalid_ThenReturnsError(t *testing.T) {
	for _, expr := range []string{"", "invalid", "60 * * * *", "* * * *"} {
		_, err := ParseSchedule(expr)
		assert.Error(t, err, expr)
	}
}
