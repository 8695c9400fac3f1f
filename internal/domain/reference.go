package domain

import (
	"fmt"
	"time"
)

// ReferenceScope names an independent reference-number sequence.
type ReferenceScope string

const (
	ReferenceScopeExpenditure ReferenceScope = "expenditure"
	ReferenceScopeRetirement  ReferenceScope = "retirement"
)

// ReferencePeriod is the (year, month) a sequence resets on.
type ReferencePeriod struct {
	Year  int
	Month int
}

// PeriodOf returns the UTC period containing t.
func PeriodOf(t time.Time) ReferencePeriod {
	u := t.UTC()
	return ReferencePeriod{Year: u.Year(), Month: int(u.Month())}
}

// FormatReference renders a reference number like "EXP-202610-0007".
// Sequences past 9999 widen instead of wrapping.
func FormatReference(prefix string, period ReferencePeriod, seq int64) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", prefix, period.Year, period.Month, seq)
}
