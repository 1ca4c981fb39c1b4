package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChainWindowIgnoresInactiveRows(t *testing.T) {
	chain := []Contract{
		{Status: StatusActive, ValidityStart: date(2024, 1, 1), ValidityEnd: date(2024, 6, 1)},
		{Status: StatusCancelled, ValidityStart: date(2020, 1, 1), ValidityEnd: date(2030, 1, 1)},
	}

	w := ChainWindow(chain, nil, nil)
	if !w.Start.Equal(date(2024, 1, 1)) || !w.End.Equal(date(2024, 6, 1)) {
		t.Fatalf("unexpected window: %v - %v", w.Start, w.End)
	}
}

func TestChainWindowMergesCandidate(t *testing.T) {
	chain := []Contract{
		{Status: StatusActive, ValidityStart: date(2024, 1, 1), ValidityEnd: date(2024, 6, 1)},
	}

	end := date(2025, 12, 31)
	w := ChainWindow(chain, nil, &end)
	if !w.Start.Equal(date(2024, 1, 1)) {
		t.Fatalf("candidate end must not move the start: %v", w.Start)
	}
	if !w.End.Equal(end) {
		t.Fatalf("expected end %v got %v", end, w.End)
	}
}

func TestExceedsBoundary(t *testing.T) {
	cases := []struct {
		name    string
		end     time.Time
		exceeds bool
	}{
		{"within cap", date(2025, 12, 31), false},
		{"exactly 24 months", date(2026, 1, 1), false},
		{"24 months and one day", date(2026, 1, 2), true},
	}

	for _, tc := range cases {
		w := ValidityWindow{Start: date(2024, 1, 1), End: tc.end}
		if w.Exceeds() != tc.exceeds {
			t.Errorf("%s: Exceeds() = %v, want %v", tc.name, w.Exceeds(), tc.exceeds)
		}
	}
}

func TestMonthsAndDays(t *testing.T) {
	w := ValidityWindow{Start: date(2024, 1, 1), End: date(2026, 1, 15)}
	if w.Months() != 24 {
		t.Fatalf("expected 24 months got %d", w.Months())
	}
	if w.Days() != 14 {
		t.Fatalf("expected 14 days got %d", w.Days())
	}
}

func TestDaysBorrowsFromPreviousMonth(t *testing.T) {
	w := ValidityWindow{Start: date(2024, 1, 31), End: date(2024, 3, 15)}
	if w.Days() != 13 {
		t.Fatalf("expected 13 day remainder got %d", w.Days())
	}
}

func TestNewValidityExceededPayload(t *testing.T) {
	w := ValidityWindow{Start: date(2024, 1, 1), End: date(2026, 1, 15)}
	err := NewValidityExceeded(w)

	if !err.LegalLimitDate.Equal(date(2026, 1, 1)) {
		t.Fatalf("expected limit 2026-01-01 got %v", err.LegalLimitDate)
	}
	if err.TotalMonths < 24 {
		t.Fatalf("expected at least 24 months got %d", err.TotalMonths)
	}
	if !err.ChainStart.Equal(w.Start) || !err.ChainEnd.Equal(w.End) {
		t.Fatalf("payload must carry the chain window")
	}
}

func TestResolveChainFieldFallback(t *testing.T) {
	sup := uint(7)
	origin := &Contract{ID: 1, SupervisorID: &sup}
	amendment := &Contract{ID: 2, IsAmendment: true, OriginID: &origin.ID}

	if got := amendment.ResolveSupervisorID(origin); got == nil || *got != sup {
		t.Fatalf("expected fallback to origin supervisor")
	}

	own := uint(9)
	amendment.SupervisorID = &own
	if got := amendment.ResolveSupervisorID(origin); got == nil || *got != own {
		t.Fatalf("own value must win over the origin's")
	}

	base := &Contract{ID: 3}
	if got := base.ResolveSectorID(nil); got != nil {
		t.Fatalf("base contract without sector resolves to nil")
	}
}
