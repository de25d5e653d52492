package availability

import (
	"testing"

	"github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func TestDisabledDatesUnionsIntervals(t *testing.T) {
	t.Parallel()

	intervals := []Interval{
		{Start: mustDate(t, "2024-01-01"), End: mustDate(t, "2024-01-03")},
		{Start: mustDate(t, "2024-01-05"), End: mustDate(t, "2024-01-05")},
	}

	got := DisabledDates(intervals)
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i, day := range got {
		if day.String() != want[i] {
			t.Fatalf("date %d = %s, want %s", i, day, want[i])
		}
	}
}

func TestDisabledDatesCollapsesOverlaps(t *testing.T) {
	t.Parallel()

	intervals := []Interval{
		{Start: mustDate(t, "2024-03-10"), End: mustDate(t, "2024-03-12")},
		{Start: mustDate(t, "2024-03-11"), End: mustDate(t, "2024-03-13")},
	}

	got := DisabledDates(intervals)
	if len(got) != 4 {
		t.Fatalf("overlapping spans should collapse to 4 dates, got %d: %v", len(got), got)
	}
}

func TestDisabledDatesTolerantOfBadInput(t *testing.T) {
	t.Parallel()

	if got := DisabledDates(nil); len(got) != 0 {
		t.Fatalf("nil intervals should yield no dates, got %v", got)
	}

	inverted := []Interval{
		{Start: mustDate(t, "2024-05-10"), End: mustDate(t, "2024-05-01")},
	}
	if got := DisabledDates(inverted); len(got) != 0 {
		t.Fatalf("inverted interval should be skipped, got %v", got)
	}

	zero := []Interval{{}}
	if got := DisabledDates(zero); len(got) != 0 {
		t.Fatalf("zero interval should be skipped, got %v", got)
	}
}

func TestNights(t *testing.T) {
	t.Parallel()

	got, err := Nights(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-04"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("Nights = %d, want 3", got)
	}

	same, err := Nights(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same != 0 {
		t.Fatalf("same-day Nights = %d, want 0", same)
	}
}

func TestPriceForRange(t *testing.T) {
	t.Parallel()

	got, err := PriceForRange(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-04"), 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 15000 {
		t.Fatalf("three-night price = %d, want 15000", got)
	}
}

func TestPriceForRangeSameDayBillsOneNight(t *testing.T) {
	t.Parallel()

	day := mustDate(t, "2024-06-15")
	got, err := PriceForRange(day, day, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5000 {
		t.Fatalf("same-day price = %d, want 5000", got)
	}
}

func TestPriceForRangeRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	_, err := PriceForRange(mustDate(t, "2024-01-05"), mustDate(t, "2024-01-01"), 5000)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInvalidRange {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestPriceForRangeRejectsNegativeRate(t *testing.T) {
	t.Parallel()

	day := mustDate(t, "2024-06-15")
	_, err := PriceForRange(day, day.AddDays(2), -100)
	if err == nil {
		t.Fatal("expected error for negative rate")
	}
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
