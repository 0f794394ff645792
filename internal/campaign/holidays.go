package campaign

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendar reports public holidays. *cal.BusinessCalendar satisfies it.
type HolidayCalendar interface {
	IsHoliday(date time.Time) (actual, observed bool, h *cal.Holiday)
}

// nationalHolidays maps ISO 3166-1 alpha-2 codes to built-in holiday sets.
var nationalHolidays = map[string][]*cal.Holiday{
	"US": us.Holidays,
	"GB": gb.Holidays,
	"DE": de.Holidays,
	"FR": fr.Holidays,
}

// NationalCalendar returns the public holiday calendar for country.
// ok is false when no built-in calendar exists; callers then rely on an
// explicit holiday list.
func NationalCalendar(country string) (c *cal.BusinessCalendar, ok bool) {
	hols, ok := nationalHolidays[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return nil, false
	}
	c = cal.NewBusinessCalendar()
	c.AddHoliday(hols...)
	return c, true
}
