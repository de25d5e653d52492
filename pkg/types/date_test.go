package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-05" {
		t.Fatalf("round trip mismatch: %s", d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.January, 4)
	if got := start.DaysUntil(end); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if got := end.DaysUntil(start); got != -3 {
		t.Fatalf("expected -3 days, got %d", got)
	}
	if got := start.DaysUntil(start); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	d := NewDate(2024, time.January, 31).AddDays(1)
	if d.String() != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", d)
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	payload := struct {
		CheckIn Date `json:"check_in"`
	}{}
	if err := json.Unmarshal([]byte(`{"check_in":"2024-03-10"}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.CheckIn.String() != "2024-03-10" {
		t.Fatalf("unexpected date %s", payload.CheckIn)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"check_in":"2024-03-10"}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}

func TestCentsAcceptsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	var payload struct {
		Price Cents `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{"price":1250}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Price != 1250 {
		t.Fatalf("unexpected price %d", payload.Price)
	}

	if err := json.Unmarshal([]byte(`{"price":"980"}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Price != 980 {
		t.Fatalf("unexpected price %d", payload.Price)
	}

	if err := json.Unmarshal([]byte(`{"price":"12.50"}`), &payload); err == nil {
		t.Fatal("expected error for fractional string")
	}
	if err := json.Unmarshal([]byte(`{"price":"abc"}`), &payload); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}
