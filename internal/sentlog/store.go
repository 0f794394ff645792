// Package sentlog records delivered messages and derives the exclusion set
// that keeps a contact from being emailed twice.
package sentlog

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/hr-outreach/internal/types"
)

// Store is an append-only log of sent messages.
type Store interface {
	Entries(ctx context.Context) ([]types.SentEntry, error)
	Append(ctx context.Context, e types.SentEntry) error
	Close() error
}

// Open chooses a store from the location: a postgres:// URL, a .db/.sqlite
// file, or otherwise a JSON file.
func Open(ctx context.Context, location string) (Store, error) {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return OpenPostgres(ctx, location)
	case isSQLitePath(lower):
		return OpenSQLite(ctx, location)
	default:
		return NewFileStore(location), nil
	}
}

func isSQLitePath(p string) bool {
	switch filepath.Ext(p) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// ExclusionSet returns the lower-cased addresses already contacted.
func ExclusionSet(entries []types.SentEntry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[types.EmailKey(e.Email)] = struct{}{}
	}
	return set
}

// FilterUnsent returns the contacts not present in the log, in input order.
func FilterUnsent(contacts []types.Contact, entries []types.SentEntry) []types.Contact {
	sent := ExclusionSet(entries)
	out := make([]types.Contact, 0, len(contacts))
	for _, c := range contacts {
		if _, ok := sent[c.EmailKey()]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountOn returns how many entries fall on the calendar day of t in t's location.
func CountOn(entries []types.SentEntry, t time.Time) int {
	y, m, d := t.Date()
	n := 0
	for _, e := range entries {
		ey, em, ed := e.Timestamp.In(t.Location()).Date()
		if ey == y && em == m && ed == d {
			n++
		}
	}
	return n
}

// DayCount is the number of messages sent on one day.
type DayCount struct {
	Day   string // YYYY-MM-DD
	Count int
}

// Stats summarizes a sent log.
type Stats struct {
	Total      int
	Today      int
	Recipients int
	Last       time.Time
	Days       []DayCount // most recent first
}

// Summarize computes log statistics relative to now. Days holds at most
// maxDays of the most recent days with activity.
func Summarize(entries []types.SentEntry, now time.Time, maxDays int) Stats {
	st := Stats{
		Total:      len(entries),
		Today:      CountOn(entries, now),
		Recipients: len(ExclusionSet(entries)),
	}

	perDay := make(map[string]int)
	for _, e := range entries {
		if e.Timestamp.After(st.Last) {
			st.Last = e.Timestamp
		}
		perDay[e.Timestamp.In(now.Location()).Format(time.DateOnly)]++
	}
	for day, n := range perDay {
		st.Days = append(st.Days, DayCount{Day: day, Count: n})
	}
	sort.Slice(st.Days, func(i, j int) bool { return st.Days[i].Day > st.Days[j].Day })
	if maxDays > 0 && len(st.Days) > maxDays {
		st.Days = st.Days[:maxDays]
	}
	return st
}
