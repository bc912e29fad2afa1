package model_test

import (
	"hostmaster/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestStay_Overlaps(t *testing.T) {
	existing := model.Stay{Start: day(10), End: day(15)}

	tests := []struct {
		name string
		stay model.Stay
		want bool
	}{
		{name: "identical range", stay: model.Stay{Start: day(10), End: day(15)}, want: true},
		{name: "starts inside", stay: model.Stay{Start: day(12), End: day(18)}, want: true},
		{name: "ends inside", stay: model.Stay{Start: day(5), End: day(11)}, want: true},
		{name: "contains existing", stay: model.Stay{Start: day(1), End: day(20)}, want: true},
		{name: "contained by existing", stay: model.Stay{Start: day(11), End: day(12)}, want: true},
		{name: "checks in on checkout day", stay: model.Stay{Start: day(15), End: day(17)}, want: false},
		{name: "checks out on checkin day", stay: model.Stay{Start: day(8), End: day(10)}, want: false},
		{name: "entirely before", stay: model.Stay{Start: day(1), End: day(3)}, want: false},
		{name: "entirely after", stay: model.Stay{Start: day(20), End: day(25)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stay.Overlaps(existing))
			assert.Equal(t, tt.want, existing.Overlaps(tt.stay), "overlap must be symmetric")
		})
	}
}

func TestStay_Valid(t *testing.T) {
	assert.True(t, model.Stay{Start: day(1), End: day(2)}.Valid())
	assert.False(t, model.Stay{Start: day(2), End: day(2)}.Valid())
	assert.False(t, model.Stay{Start: day(3), End: day(2)}.Valid())
}

func TestParseStatus(t *testing.T) {
	for _, value := range []string{"pending", "confirmed", "cancelled"} {
		status, err := model.ParseStatus(value)
		assert.NoError(t, err)
		assert.Equal(t, value, status.String())
	}

	_, err := model.ParseStatus("Cancelled")
	assert.Error(t, err)

	assert.False(t, model.StatusCancelled.Blocking())
	assert.True(t, model.StatusPending.Blocking())
	assert.True(t, model.StatusConfirmed.Blocking())
}
