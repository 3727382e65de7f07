// Package pgdate converts between diem.Diem and PostgreSQL date values as
// represented by pgx.
package pgdate

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rabitt1ove/diem"
)

// ErrInfinite is returned by To for the 'infinity' and '-infinity' dates.
var ErrInfinite = errors.New("pgdate: infinite date")

// From returns pg's representation of d.
func From(d diem.Diem) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

// To returns the calendar day of pg. A NULL date yields the zero Diem and
// no error.
func To(pg pgtype.Date) (diem.Diem, error) {
	if !pg.Valid {
		return diem.Diem{}, nil
	}
	if pg.InfinityModifier != pgtype.Finite {
		return diem.Diem{}, ErrInfinite
	}
	return diem.FromTime(pg.Time), nil
}
