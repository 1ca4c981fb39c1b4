package domain

import "time"

// MaxValidityMonths is the cumulative legal cap on a contract chain's
// validity window, in calendar months.
const MaxValidityMonths = 24

// ValidityWindow is the chain-wide date range a candidate create/update
// would produce: the earliest start and the latest end over all active
// rows of the chain, merged with the candidate values.
type ValidityWindow struct {
	Start time.Time
	End   time.Time
}

// ChainWindow computes the window over the active rows of a chain,
// widened by optional candidate start/end values. Rows that are not
// Active no longer count against the cap.
func ChainWindow(chain []Contract, candidateStart, candidateEnd *time.Time) ValidityWindow {
	var w ValidityWindow
	for _, c := range chain {
		if c.Status != StatusActive {
			continue
		}
		if w.Start.IsZero() || c.ValidityStart.Before(w.Start) {
			w.Start = c.ValidityStart
		}
		if c.ValidityEnd.After(w.End) {
			w.End = c.ValidityEnd
		}
	}
	if candidateStart != nil && (w.Start.IsZero() || candidateStart.Before(w.Start)) {
		w.Start = *candidateStart
	}
	if candidateEnd != nil && candidateEnd.After(w.End) {
		w.End = *candidateEnd
	}
	return w
}

// LegalLimit is the last admissible end date for the window's start.
func (w ValidityWindow) LegalLimit() time.Time {
	return w.Start.AddDate(0, MaxValidityMonths, 0)
}

// Exceeds reports whether the window runs past the legal cap. A window
// of exactly 24 months and 0 days is admissible.
func (w ValidityWindow) Exceeds() bool {
	return w.End.After(w.LegalLimit())
}

// Months is the calendar-month span of the window,
// 12*yearDiff + monthDiff. The day remainder is informational only;
// the cap itself is enforced against LegalLimit.
func (w ValidityWindow) Months() int {
	return 12*(w.End.Year()-w.Start.Year()) + int(w.End.Month()-w.Start.Month())
}

// Days is the day remainder left over after Months full months,
// borrowing from the month preceding the end date when the end day
// falls before the start day. Informational only, never negative.
func (w ValidityWindow) Days() int {
	days := w.End.Day() - w.Start.Day()
	if days < 0 {
		days += daysInMonth(w.End.Year(), w.End.Month()-1)
	}
	if days < 0 {
		days = 0
	}
	return days
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
