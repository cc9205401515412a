package calendar

import (
	"gzctime/internal/arith"
	"gzctime/internal/zone"
)

// Mode selects how the linear time value is mapped onto the block anchor.
type Mode uint8

const (
	// Wide treats linear time as a full 64-bit count.
	Wide Mode = iota
	// Y2038 treats linear time as a 32-bit count reinterpreted relative to
	// 2030-01-01, so that values that overflowed past 2038-01-19 continue
	// into the 2090s. The covered range is roughly 1962 to 2098.
	Y2038
)

func (m Mode) String() string {
	if m == Y2038 {
		return "y2038"
	}
	return "wide"
}

// sinceAnchor converts unix seconds into seconds since 2001-01-01 UTC.
func (m Mode) sinceAnchor(unix int64) int64 {
	if m == Y2038 {
		t := int32(unix) - int32(unix2030)
		return int64(t) + (unix2030 - unix2001)
	}
	return unix - unix2001
}

// toUnix is the inverse of sinceAnchor.
func (m Mode) toUnix(anchored int64) int64 {
	if m == Y2038 {
		t := int32(anchored - (unix2030 - unix2001))
		t += int32(unix2030)
		return int64(t)
	}
	return anchored + unix2001
}

// Decompose returns the calendar view of unix in zone z. It never fails;
// every linear time maps onto exactly one calendar for a given zone.
func Decompose(unix int64, z zone.Zone, mode Mode) Calendar {
	t := mode.sinceAnchor(unix) + z.UTCOffset().Seconds()

	k, in400 := arith.FloorMod(t, uint64(SecondsPer400Years))
	j, in100 := arith.FloorMod(int64(in400), uint64(SecondsPer100Years))
	if j == 4 {
		// Last day of a 400-year block belongs to the fourth century.
		j = 3
		in100 = in400 - 3*SecondsPer100Years
	}
	i, in4 := arith.FloorMod(int64(in100), uint64(SecondsPer4Years))
	h, in1 := arith.FloorMod(int64(in4), uint64(SecondsPerNormalYear))
	if h == 4 {
		// December 31 of the leap year closing a 4-year block.
		h = 3
		in1 = in4 - 3*SecondsPerNormalYear
	}

	c := Calendar{Zone: z}
	c.Year = anchorYear + 400*k + 100*j + 4*i + h

	table := &secondsBeforeMonth[leapIndex(c.Year)]
	m := 11
	for ; m > 0; m-- {
		if in1 >= table[m] {
			break
		}
	}
	c.Month = m + 1

	days, inDay := arith.FloorMod(int64(in1-table[m]), uint64(SecondsPerDay))
	hour, inHour := arith.FloorMod(int64(inDay), uint64(SecondsPerHour))
	minute, second := arith.FloorMod(int64(inHour), uint64(SecondsPerMinute))
	c.Day = int(days) + 1
	c.Hour = int(hour)
	c.Minute = int(minute)
	c.Second = int(second)

	c.DayInYear = int(arith.Floor(int64(in1), uint64(SecondsPerDay))) + 1

	// 2001-01-01 is a Monday, so whole weeks since the anchor start on Mondays.
	_, inWeek := arith.FloorMod(t, uint64(SecondsPerWeek))
	c.DayInWeek = int(inWeek/SecondsPerDay) + 1
	c.CalendarWeek = isoWeek(c.Year, c.DayInYear, c.DayInWeek)

	return c
}

// Compose returns the unix time of c. The derived fields DayInWeek,
// DayInYear and CalendarWeek are ignored.
//
// c must hold valid fields (see Validate); out-of-range values are not
// clamped and yield an unspecified instant.
func Compose(c Calendar, mode Mode) int64 {
	k, in400 := arith.FloorMod(c.Year-anchorYear, uint64(400))
	j, in100 := arith.FloorMod(int64(in400), uint64(100))
	i, h := arith.FloorMod(int64(in100), uint64(4))

	t := k * SecondsPer400Years
	t += j * SecondsPer100Years
	t += i * SecondsPer4Years
	t += int64(h) * SecondsPerNormalYear
	t += int64(secondsBeforeMonth[leapIndex(c.Year)][c.Month-1])
	t += int64(c.Day-1) * SecondsPerDay
	t += int64(c.Hour) * SecondsPerHour
	t += int64(c.Minute) * SecondsPerMinute
	t += int64(c.Second)
	t -= c.Zone.UTCOffset().Seconds()

	return mode.toUnix(t)
}

// isoWeek returns the ISO-8601 week number of a day, or 0 if the day
// belongs to the last week of the previous year.
func isoWeek(year int64, dayInYear, dayInWeek int) int {
	week := (dayInYear - dayInWeek + 10) / 7
	if week < 1 {
		return 0
	}
	if week == 53 && weeksIn(year, dayInYear, dayInWeek) == 52 {
		// Late December days that already belong to week 1 of next year.
		return 1
	}
	return week
}

// weeksIn returns 52 or 53, the number of ISO weeks of year, given any day
// of that year and its weekday.
func weeksIn(year int64, dayInYear, dayInWeek int) int {
	jan1 := ((dayInWeek-1)-(dayInYear-1)%7+7)%7 + 1
	if jan1 == 4 || (jan1 == 3 && IsLeap(year)) {
		return 53
	}
	return 52
}
