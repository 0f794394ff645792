package campaign

import "time"

// maxLookahead bounds the search for the next open day.
const maxLookahead = 400

// Window describes when sending is allowed: [StartHour, EndHour) on days that
// are neither skipped weekends nor holidays. Holidays come from the explicit
// list and, when set, from Calendar, where an observed day also closes.
type Window struct {
	StartHour    int
	EndHour      int
	SkipWeekends bool
	Holidays     []time.Time
	Calendar     HolidayCalendar
}

// Open reports whether t falls inside the window.
func (w Window) Open(t time.Time) bool {
	if w.ClosedDay(t) {
		return false
	}
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// ClosedDay reports whether t's calendar day is a skipped weekend or a holiday.
func (w Window) ClosedDay(t time.Time) bool {
	if w.SkipWeekends {
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	if w.Calendar != nil {
		if actual, observed, _ := w.Calendar.IsHoliday(t); actual || observed {
			return true
		}
	}
	day := t.Format(time.DateOnly)
	for _, h := range w.Holidays {
		if h.Format(time.DateOnly) == day {
			return true
		}
	}
	return false
}

// NextOpen returns t if the window is open, otherwise the start of the next
// open period. ok is false when the window never opens within maxLookahead
// days, as with EndHour <= StartHour or every day closed.
func (w Window) NextOpen(t time.Time) (next time.Time, ok bool) {
	if w.Open(t) {
		return t, true
	}
	y, m, d := t.Date()
	for i := 0; i < maxLookahead; i++ {
		cand := time.Date(y, m, d+i, w.StartHour, 0, 0, 0, t.Location())
		if cand.Before(t) || !w.Open(cand) {
			continue
		}
		return cand, true
	}
	return time.Time{}, false
}
