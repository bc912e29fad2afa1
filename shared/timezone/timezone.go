package timezone

import (
	"hostmaster/config"
	"hostmaster/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = load(config.Get().App.Timezone)

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the hotel timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns the current calendar date in the hotel timezone as midnight UTC,
// matching how DATE columns come back from postgres.
func Today() time.Time {
	return civil(Now())
}

// Tomorrow is Today plus one calendar day.
func Tomorrow() time.Time {
	return Today().AddDate(0, 0, 1)
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constant.DateOnlyFormat, value, time.UTC) //nolint:wrapcheck
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse reads value in the hotel timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

func civil(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
