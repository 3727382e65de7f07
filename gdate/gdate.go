// Package gdate converts between diem.Diem and the google.type.Date
// protobuf message.
package gdate

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/genproto/googleapis/type/date"

	"github.com/rabitt1ove/diem"
)

const (
	minYear = 1
	maxYear = 9999
)

var (
	// ErrUnspecified is returned by To for a nil or all-zero message.
	ErrUnspecified = errors.New("gdate: unspecified date")
	// ErrNoYear is returned by To for month-and-day dates without a year,
	// such as anniversaries, which do not name a single day.
	ErrNoYear = errors.New("gdate: date has no year")
)

// From returns the message for d. The message cannot carry years outside
// 1 to 9999, year 0 meaning "no year", so such days fail with an error
// wrapping diem.ErrInvalidDate.
func From(d diem.Diem) (*date.Date, error) {
	y, m, day := d.Date()
	if y < minYear || y > maxYear {
		return nil, fmt.Errorf("%w: year %d out of range [%d, %d]", diem.ErrInvalidDate, y, minYear, maxYear)
	}
	return &date.Date{
		Year:  int32(y),
		Month: int32(m),
		Day:   int32(day),
	}, nil
}

// To returns the calendar day of p. A date with no day refers to the first
// day of its month, and one with neither month nor day to January 1 of its
// year. Fields out of range fail with an error wrapping diem.ErrInvalidDate.
func To(p *date.Date) (diem.Diem, error) {
	var (
		year  = p.GetYear()
		month = p.GetMonth()
		day   = p.GetDay()
	)
	if year == 0 && month == 0 && day == 0 {
		return diem.Diem{}, ErrUnspecified
	}
	if year == 0 {
		return diem.Diem{}, ErrNoYear
	}

	if day == 0 {
		day = 1
		if month == 0 {
			month = 1
		}
	}
	d := diem.Of(int(year), int(month)-1, int(day))
	if y, m, dd := d.Date(); y != int(year) || m != time.Month(month) || dd != int(day) || !d.IsValid() {
		return diem.Diem{}, fmt.Errorf("%w: %04d-%02d-%02d", diem.ErrInvalidDate, year, month, day)
	}
	return d, nil
}
