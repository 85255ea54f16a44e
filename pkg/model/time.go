package model

import "fmt"

// Operating calendar constants. All times are minute offsets from midnight.
const (
	DayStart   = 8*60 + 30  // 08:30
	DayEnd     = 21*60 + 30 // 21:30
	LunchStart = 12*60 + 30 // 12:30
	LunchEnd   = 13*60 + 30 // 13:30
)

type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const TotalDays = 6

var dayNames = [TotalDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d Day) String() string {
	if d < 0 || int(d) >= TotalDays {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Days returns every operating day in order.
func Days() []Day {
	days := make([]Day, 0, TotalDays)
	for d := range TotalDays {
		days = append(days, Day(d))
	}
	return days
}

// Slot is a time interval within a single day. Start is inclusive, End exclusive.
type Slot struct {
	Day   Day
	Start int
	End   int
}

func (s Slot) Overlaps(o Slot) bool {
	return s.Day == o.Day && s.Start < o.End && o.Start < s.End
}

func (s Slot) Minutes() int {
	return s.End - s.Start
}

// String renders the slot the way the institution prints it: 12-hour clock
// without a meridiem suffix, e.g. "8:30-9:30" or "1:30-3:30".
func (s Slot) String() string {
	return FormatRange(s.Start, s.End)
}

func FormatRange(start, end int) string {
	return formatClock(start) + "-" + formatClock(end)
}

func formatClock(minutes int) string {
	hour := minutes / 60
	if hour > 12 {
		hour -= 12
	}
	return fmt.Sprintf("%d:%02d", hour, minutes%60)
}
