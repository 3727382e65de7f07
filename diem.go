// Package diem provides Diem, a calendar date with no time of day and no
// time zone.
//
// A Diem is stored as midnight UTC of the day it represents. Instants are
// collapsed to the calendar day they fall on in their own zone (or in the
// zone of a [Calendar] built with [WithLocation]), so the same wall-clock
// day is returned no matter which zone the host runs in. Strings and
// explicit year/month/day values name a day directly and are never shifted.
//
// Basic usage:
//
//	d := diem.MustParse("2019-12-31")
//	d.String()                          // "Tue Dec 31 2019"
//	d.SetDay(d.Day() + 1).ISOString()   // "2020-01-01"
//	diem.Of(2020, 0, 1).Diff(d)         // 1
//
// Months are zero-based (0 is January) in [Of], [Diem.Month],
// [Diem.SetMonth] and [Diem.SetYear]. Use [Diem.Date] for a time.Month.
//
// For an injected clock or a fixed zone, create a Calendar instance:
//
//	cal := diem.New(diem.WithLocation(tokyo), diem.WithClock(fakeNow))
//	cal.Today()
package diem

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDate is returned, wrapped, when a value does not name a
// calendar day that Diem can represent.
var ErrInvalidDate = errors.New("invalid date")

const (
	isoLayout    = time.DateOnly
	stringLayout = "Mon Jan 02 2006"

	secondsPerDay = 24 * 60 * 60

	minYear = 0
	maxYear = 9999
)

// Diem is a single calendar day. The zero value is January 1 of year 1.
//
// Diem values are immutable and comparable with ==; two values are equal
// exactly when they represent the same day.
type Diem struct {
	t time.Time // midnight UTC
}

// Of returns the Diem for the given year, zero-based month and day.
// Values outside their usual ranges roll over the way time.Date normalizes
// them: Of(2020, 2, 0) is February 29 2020 and Of(2020, 13, 1) is
// February 1 2021.
func Of(year, month, day int) Diem {
	return Diem{t: time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)}
}

// OfMonth returns the first day of the given year and zero-based month.
func OfMonth(year, month int) Diem {
	return Of(year, month, 1)
}

// Parse reads the first 10 characters of s as a YYYY-MM-DD date. Anything
// after them, such as a time of day, is ignored. Months and days out of
// range are rejected rather than rolled over.
func Parse(s string) (Diem, error) {
	if len(s) < len(isoLayout) {
		return Diem{}, fmt.Errorf("%w: %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	t, err := time.Parse(isoLayout, s[:len(isoLayout)])
	if err != nil {
		return Diem{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	return Diem{t: t}, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) Diem {
	d, err := Parse(s)
	if err != nil {
		panic("diem: " + err.Error())
	}
	return d
}

// Year returns the year.
func (d Diem) Year() int { return d.t.Year() }

// Month returns the zero-based month, 0 for January through 11 for December.
func (d Diem) Month() int { return int(d.t.Month()) - 1 }

// Day returns the day of the month.
func (d Diem) Day() int { return d.t.Day() }

// Weekday returns the day of the week, Sunday being 0.
func (d Diem) Weekday() time.Weekday { return d.t.Weekday() }

// YearDay returns the day of the year, 1 through 365 or 366 in leap years.
func (d Diem) YearDay() int { return d.t.YearDay() }

// Date returns the year, month and day in the form time.Time.Date does.
func (d Diem) Date() (year int, month time.Month, day int) {
	return d.t.Date()
}

// SetDay returns d with its day of the month replaced by n. Days outside
// the month roll over into the neighbouring months: SetDay(0) is the last
// day of the previous month.
func (d Diem) SetDay(n int) Diem {
	y, m, _ := d.t.Date()
	return Diem{t: time.Date(y, m, n, 0, 0, 0, 0, time.UTC)}
}

// SetMonth returns d with its zero-based month replaced by m and, when
// given, its day replaced too. The fields are applied together, then
// normalized: months outside 0-11 roll over into neighbouring years and
// days outside the resulting month roll over into neighbouring months.
// SetMonth(1, 15) on January 31 is February 15.
func (d Diem) SetMonth(m int, day ...int) Diem {
	if len(day) > 1 {
		panic("diem: SetMonth takes at most one day")
	}
	y, _, dd := d.t.Date()
	if len(day) == 1 {
		dd = day[0]
	}
	return Of(y, m, dd)
}

// SetYear returns d with its year replaced by y and, when given, its
// zero-based month and then day replaced too. As with SetMonth the fields
// are applied together, then normalized, so SetYear(2021) on February 29
// 2020 is March 1 2021 and SetYear(2021, 1, 28) on it is February 28 2021.
func (d Diem) SetYear(y int, monthDay ...int) Diem {
	_, m, dd := d.t.Date()
	mm := int(m) - 1
	switch len(monthDay) {
	case 0:
	case 1:
		mm = monthDay[0]
	case 2:
		mm, dd = monthDay[0], monthDay[1]
	default:
		panic("diem: SetYear takes at most a month and a day")
	}
	return Of(y, mm, dd)
}

// AddDays returns the day n days after d, or before it when n is negative.
func (d Diem) AddDays(n int) Diem {
	return Diem{t: d.t.AddDate(0, 0, n)}
}

// AddDate returns d shifted by the given years, months and days with the
// same normalization as time.Time.AddDate.
func (d Diem) AddDate(years, months, days int) Diem {
	return Diem{t: d.t.AddDate(years, months, days)}
}

// Diff returns the number of days from other to d: positive when d is the
// later day, negative when it is earlier and zero when they are the same.
func (d Diem) Diff(other Diem) int {
	secs := d.t.Unix() - other.t.Unix()
	return int(math.Round(float64(secs) / secondsPerDay))
}

// DiffTime is like Diff but takes an instant, which is first collapsed to
// its calendar day using the default Calendar.
func (d Diem) DiffTime(t time.Time) int {
	return defaultCal.DiffTime(d, t)
}

// Compare returns -1 if d is before other, +1 if it is after and 0 if they
// are the same day.
func (d Diem) Compare(other Diem) int { return d.t.Compare(other.t) }

// Before reports whether d is an earlier day than other.
func (d Diem) Before(other Diem) bool { return d.t.Before(other.t) }

// After reports whether d is a later day than other.
func (d Diem) After(other Diem) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same day.
func (d Diem) Equal(other Diem) bool { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero Diem, January 1 of year 1.
func (d Diem) IsZero() bool { return d.t.IsZero() }

// IsValid reports whether d can be written as YYYY-MM-DD, that is whether
// its year is in [0, 9999].
func (d Diem) IsValid() bool {
	y := d.t.Year()
	return y >= minYear && y <= maxYear
}

// String returns d in the abbreviated form "Tue Dec 31 2019".
func (d Diem) String() string { return d.t.Format(stringLayout) }

// ISOString returns d as YYYY-MM-DD.
func (d Diem) ISOString() string { return d.t.Format(isoLayout) }

// GoString implements fmt.GoStringer.
func (d Diem) GoString() string {
	return fmt.Sprintf("diem.MustParse(%q)", d.ISOString())
}

// Time returns the instant at midnight UTC of d.
func (d Diem) Time() time.Time { return d.t }
