// Package schedule expands textual recurrence rules into occurrence dates.
//
// A rule is a pure value: NextOccurrence is a function of the rule and the
// date it is asked about, so expanding the same rule over the same window
// always produces the same sequence.
package schedule

import (
	"strconv"
	"strings"

	"budgetize/internal/core"
)

// Frequency is the base cadence of a rule.
type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

// Rule is a parsed recurrence schedule.
//
// Grammar:
//
//	daily | weekly | biweekly | monthly | yearly
//	monthly on <day>          anchor day of month, clamped to month length
//	yearly on <month>/<day>   anchor date within the year
//
// Unanchored monthly/yearly rules step from the date they are asked about,
// keeping its day of month (clamped).
type Rule struct {
	Every Frequency
	Day   int // anchor day for monthly/yearly, 0 if unanchored
	Month int // anchor month for yearly, 0 if unanchored
	text  string
}

// Parse reads a rule from its textual form. Case and surrounding whitespace
// are ignored. Unparseable text fails with ScheduleFormatError.
func Parse(text string) (Rule, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	bad := func() (Rule, error) {
		return Rule{}, &core.ScheduleFormatError{Text: text}
	}
	if len(fields) == 0 {
		return bad()
	}
	rule := Rule{Every: Frequency(fields[0]), text: text}
	switch rule.Every {
	case Daily, Weekly, Biweekly, Monthly, Yearly:
	default:
		return bad()
	}
	if len(fields) == 1 {
		return rule, nil
	}
	if len(fields) != 3 || fields[1] != "on" {
		return bad()
	}
	switch rule.Every {
	case Monthly:
		day, err := strconv.Atoi(fields[2])
		if err != nil || day < 1 || day > 31 {
			return bad()
		}
		rule.Day = day
	case Yearly:
		md := strings.SplitN(fields[2], "/", 2)
		if len(md) != 2 {
			return bad()
		}
		month, err1 := strconv.Atoi(md[0])
		day, err2 := strconv.Atoi(md[1])
		if err1 != nil || err2 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return bad()
		}
		rule.Month = month
		rule.Day = day
	default:
		// daily/weekly/biweekly take no anchor
		return bad()
	}
	return rule, nil
}

// String returns the original rule text.
func (r Rule) String() string {
	return r.text
}

// NextOccurrence returns the first occurrence strictly after the given date.
func (r Rule) NextOccurrence(after core.Date) core.Date {
	switch r.Every {
	case Daily:
		return after.AddDays(1)
	case Weekly:
		return after.AddDays(7)
	case Biweekly:
		return after.AddDays(14)
	case Monthly:
		return r.nextMonthly(after)
	case Yearly:
		return r.nextYearly(after)
	}
	// Parse only constructs known frequencies.
	return after.AddDays(1)
}

func (r Rule) nextMonthly(after core.Date) core.Date {
	day := r.Day
	if day == 0 {
		day = after.Day()
	}
	year, month := after.Year(), after.Month()
	next := clampedDate(year, month, day)
	for !next.After(after) {
		month++
		if month > 12 {
			month = 1
			year++
		}
		next = clampedDate(year, month, day)
	}
	return next
}

func (r Rule) nextYearly(after core.Date) core.Date {
	month, day := r.Month, r.Day
	if month == 0 {
		month, day = after.Month(), after.Day()
	}
	next := clampedDate(after.Year(), month, day)
	for !next.After(after) {
		next = clampedDate(next.Year()+1, month, day)
	}
	return next
}

// clampedDate pins a day that overflows the month to the month's last day
// (Feb 31 becomes Feb 28/29).
func clampedDate(year, month, day int) core.Date {
	if last := core.DaysInMonth(year, month); day > last {
		day = last
	}
	return core.NewDate(year, month, day)
}
