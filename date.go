package logbook

import (
	"strconv"
	"time"
)

const (
	// LongDateLayout renders dates like "March 01, 2020".
	LongDateLayout = "January 02, 2006"

	// ISO8601Layout renders timestamps like "2020-03-01T09:30:00+00:00".
	// Unlike time.RFC3339, UTC is written as an offset rather than "Z".
	ISO8601Layout = "2006-01-02T15:04:05-07:00"
)

// MonthName returns the full English name of the month t falls in, in loc.
func MonthName(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Month().String()
}

// Year returns the four digit year t falls in, in loc.
func Year(t time.Time, loc *time.Location) string {
	return strconv.Itoa(t.In(orUTC(loc)).Year())
}

// LongDate formats t using LongDateLayout in loc.
func LongDate(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(LongDateLayout)
}

// ISO8601 formats t using ISO8601Layout in loc.
func ISO8601(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(ISO8601Layout)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
