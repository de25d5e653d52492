package availability

import (
	"fmt"
	"sort"

	"github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// Interval is one occupied span of calendar days, inclusive of both ends.
type Interval struct {
	Start types.Date
	End   types.Date
}

// DisabledDates expands every interval into its calendar days and unions the
// result. A nil or empty input yields no disabled dates; an interval whose end
// precedes its start is skipped. The returned slice is sorted and free of
// duplicates.
func DisabledDates(intervals []Interval) []types.Date {
	seen := map[string]types.Date{}
	for _, interval := range intervals {
		if interval.Start.IsZero() || interval.End.IsZero() {
			continue
		}
		if interval.End.Before(interval.Start) {
			continue
		}
		for day := interval.Start; !day.After(interval.End); day = day.AddDays(1) {
			seen[day.String()] = day
		}
	}

	out := make([]types.Date, 0, len(seen))
	for _, day := range seen {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Nights counts billable nights as end minus start. A stay from day 1 to
// day 3 is two nights.
func Nights(start, end types.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, errors.New(errors.CodeValidation, "both start and end dates are required")
	}
	if end.Before(start) {
		return 0, errors.New(errors.CodeInvalidRange, fmt.Sprintf("end date %s precedes start date %s", end, start)).
			WithDetails(map[string]string{"start": start.String(), "end": end.String()})
	}
	return start.DaysUntil(end), nil
}

// PriceForRange prices a candidate stay at the given nightly rate. A same-day
// selection bills a single night.
func PriceForRange(start, end types.Date, nightlyRateCents int64) (int64, error) {
	if nightlyRateCents < 0 {
		return 0, errors.New(errors.CodeValidation, fmt.Sprintf("nightly rate must not be negative, got %d", nightlyRateCents))
	}
	nights, err := Nights(start, end)
	if err != nil {
		return 0, err
	}
	if nights == 0 {
		return nightlyRateCents, nil
	}
	return int64(nights) * nightlyRateCents, nil
}
