package diem

import "time"

// coerceUTC returns midnight UTC of the calendar day that t falls on when
// observed in loc. A nil loc means the zone t itself carries.
//
// The instant is shifted by the zone's offset at t before the UTC fields are
// read, so zones east of UTC (2020-04-01 00:00 in London during BST is
// 2020-03-31 23:00 UTC) land on the local day rather than the UTC one.
func coerceUTC(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	_, offset := t.In(loc).Zone()
	shifted := t.UTC().Add(time.Duration(offset) * time.Second)
	y, m, d := shifted.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
