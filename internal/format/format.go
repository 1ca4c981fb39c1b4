// Package format holds the display-normalization rules shared by every
// generated document: upper-cased text, dd/mm/yyyy dates, pt-BR
// currency, composite addresses and derived presentation fields.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/nanpeixoto/acervus/internal/domain"
)

// Sentinel is substituted whenever a resolved field has no value.
const Sentinel = "NOT INFORMED"

// DisplayDate is the presentation date layout. Storage and comparison
// always use ISO dates; only rendered documents use this one.
const DisplayDate = "02/01/2006"

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "DOMINGO",
	time.Monday:    "SEGUNDA-FEIRA",
	time.Tuesday:   "TERÇA-FEIRA",
	time.Wednesday: "QUARTA-FEIRA",
	time.Thursday:  "QUINTA-FEIRA",
	time.Friday:    "SEXTA-FEIRA",
	time.Saturday:  "SÁBADO",
}

// Text upper-cases and trims a free-text field.
func Text(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Date renders a date as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format(DisplayDate)
}

// MonthName returns the lower-case Portuguese month name.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// WeekdayName returns the upper-case Portuguese weekday name.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// Currency renders a monetary amount in pt-BR convention with two
// decimals: 1234.5 -> "1.234,50".
func Currency(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// Address joins the individual address fields into the display form
// used in contract clauses. Blank parts are skipped.
func Address(street, number, neighborhood, city, state string) string {
	var parts []string
	if s := Text(street); s != "" {
		if n := Text(number); n != "" {
			s += ", " + n
		}
		parts = append(parts, s)
	}
	if n := Text(neighborhood); n != "" {
		parts = append(parts, n)
	}
	cityState := Text(city)
	if st := Text(state); st != "" {
		if cityState != "" {
			cityState += "/" + st
		} else {
			cityState = st
		}
	}
	if cityState != "" {
		parts = append(parts, cityState)
	}
	return strings.Join(parts, " - ")
}

// ScheduleDescription builds the human-readable weekly schedule used
// in the working-hours clause, e.g.
// "SEGUNDA-FEIRA DAS 08:00 ÀS 12:00; TERÇA-FEIRA DAS 08:00 ÀS 12:00".
func ScheduleDescription(entries []domain.ScheduleEntry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s DAS %s ÀS %s", WeekdayName(e.Weekday), e.StartTime, e.EndTime))
	}
	return strings.Join(parts, "; ")
}
