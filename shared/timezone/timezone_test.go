package timezone_test

import (
	"hostmaster/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestTodayAndTomorrow(t *testing.T) {
	today := timezone.Today()
	tomorrow := timezone.Tomorrow()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Equal(t, 24*time.Hour, tomorrow.Sub(today))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", value: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "timestamp is rejected", value: "2024-02-29T10:00:00Z", wantErr: true},
		{name: "impossible date", value: "2023-02-29", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02 15:04", "2024-01-01 14:00")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2024-01-01 14:00", timezone.Format(parsed, "2006-01-02 15:04"))
}
