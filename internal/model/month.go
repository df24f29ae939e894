package model

import "time"

// MonthRange is the half-open interval [Start, End) covering one calendar
// month in Start's location.
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) MonthRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthRange{Start: start, End: start.AddDate(0, 1, 0)}
}

// Contains reports whether t falls inside the month.
func (m MonthRange) Contains(t time.Time) bool {
	return !t.Before(m.Start) && t.Before(m.End)
}

// Next returns the following month.
func (m MonthRange) Next() MonthRange {
	return MonthOf(m.End)
}

// Prev returns the preceding month.
func (m MonthRange) Prev() MonthRange {
	return MonthOf(m.Start.AddDate(0, -1, 0))
}

// Days lists midnight of every day in the month.
func (m MonthRange) Days() []time.Time {
	var days []time.Time
	for d := m.Start; d.Before(m.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// String formats the month as YYYY-MM.
func (m MonthRange) String() string {
	return m.Start.Format("2006-01")
}

// SameDay reports whether a and b fall on the same calendar day, judged in
// b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey formats t's calendar day (in loc) as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
