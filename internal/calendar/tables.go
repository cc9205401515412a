package calendar

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
	SecondsPerWeek   = 7 * SecondsPerDay

	daysPerNormalYear = 365
	daysPer4Years     = 4*daysPerNormalYear + 1 // one leap day every 4 years
	daysPer100Years   = 25*daysPer4Years - 1    // no leap day in the century year
	daysPer400Years   = 4*daysPer100Years + 1   // except every 400 years

	SecondsPerNormalYear = daysPerNormalYear * SecondsPerDay
	SecondsPer4Years     = daysPer4Years * SecondsPerDay
	SecondsPer100Years   = daysPer100Years * SecondsPerDay
	SecondsPer400Years   = daysPer400Years * SecondsPerDay
)

// Reference instants in unix seconds.
const (
	// anchorYear starts the 400-year block the decomposition counts from.
	// 2001-01-01 is a Monday.
	anchorYear = 2001
	unix2001   = 978307200

	// unix2030 is the epoch used to reinterpret 32-bit linear times.
	unix2030 = 1893456000
)

// daysInMonth is indexed by [leap][month], month 1..12.
var daysInMonth = [2][13]int{
	{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// secondsBeforeMonth holds the seconds elapsed in a year before the first of
// each month, indexed by [leap][month-1].
var secondsBeforeMonth = func() (t [2][12]uint64) {
	for leap := 0; leap < 2; leap++ {
		var sum uint64
		for m := 1; m <= 12; m++ {
			t[leap][m-1] = sum
			sum += uint64(daysInMonth[leap][m]) * SecondsPerDay
		}
	}
	return t
}()

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days of month (1..12) in year.
func DaysIn(year int64, month int) int {
	return daysInMonth[leapIndex(year)][month]
}

func leapIndex(year int64) int {
	if IsLeap(year) {
		return 1
	}
	return 0
}
