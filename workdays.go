package diem

import "time"

// maxWorkdaySearch bounds NextWorkday and PreviousWorkday.
const maxWorkdaySearch = 366

// IsWorkday reports whether d is neither a weekend day nor closed.
func (c *Calendar) IsWorkday(d Diem) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.IsClosed(d)
}

// NextWorkday returns the first workday on or after d.
// Returns false if none is found within 366 days.
func (c *Calendar) NextWorkday(d Diem) (Diem, bool) {
	return c.walk(d, 1)
}

// PreviousWorkday returns the last workday on or before d.
// Returns false if none is found within 366 days.
func (c *Calendar) PreviousWorkday(d Diem) (Diem, bool) {
	return c.walk(d, -1)
}

func (c *Calendar) walk(d Diem, step int) (Diem, bool) {
	cur := d
	for i := 0; i < maxWorkdaySearch; i++ {
		if c.IsWorkday(cur) {
			return cur, true
		}
		cur = cur.AddDays(step)
	}
	return Diem{}, false
}

// WorkdaysBetween returns the count of workdays in the range [from, to]
// inclusive. If from is after to, returns 0.
func (c *Calendar) WorkdaysBetween(from, to Diem) int {
	if to.Before(from) {
		return 0
	}

	count := 0
	for cur := from; !cur.After(to); cur = cur.AddDays(1) {
		if c.IsWorkday(cur) {
			count++
		}
	}
	return count
}

// --- Package-level convenience functions ---

// IsWorkday reports whether d is a workday on the default calendar.
func IsWorkday(d Diem) bool { return defaultCal.IsWorkday(d) }

// NextWorkday returns the first workday on or after d.
func NextWorkday(d Diem) (Diem, bool) { return defaultCal.NextWorkday(d) }

// PreviousWorkday returns the last workday on or before d.
func PreviousWorkday(d Diem) (Diem, bool) { return defaultCal.PreviousWorkday(d) }

// WorkdaysBetween returns the count of workdays in [from, to].
func WorkdaysBetween(from, to Diem) int { return defaultCal.WorkdaysBetween(from, to) }
