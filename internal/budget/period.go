package budget

import (
	"fmt"
	"strings"
	"time"
)

// Period is the analysis window keyword accepted by the API.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the two ranges share at least one instant.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.End.Before(o.Start) && !o.End.Before(r.Start)
}

// ParsePeriod validates a period keyword. An empty value means month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", invalid("Invalid period", fmt.Sprintf("period must be one of week, month, year (got %q)", s))
}

// LimitPeriod maps an analysis period onto the matching limit recurrence.
func (p Period) LimitPeriod() LimitPeriod {
	switch p {
	case PeriodWeek:
		return LimitWeekly
	case PeriodYear:
		return LimitYearly
	default:
		return LimitMonthly
	}
}

// ParseLimitPeriod validates a budget limit recurrence.
func ParseLimitPeriod(s string) (LimitPeriod, error) {
	switch lp := LimitPeriod(strings.ToLower(strings.TrimSpace(s))); lp {
	case LimitWeekly, LimitMonthly, LimitYearly:
		return lp, nil
	}
	return "", invalid("Invalid period", fmt.Sprintf("period must be one of weekly, monthly, yearly (got %q)", s))
}

func (lp LimitPeriod) analysisPeriod() Period {
	switch lp {
	case LimitWeekly:
		return PeriodWeek
	case LimitYearly:
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// PeriodDates returns the period containing ref. A non-zero year moves ref
// into that year for month and year periods; weeks always follow ref.
func PeriodDates(p Period, year int, ref time.Time) DateRange {
	if year != 0 && p != PeriodWeek {
		ref = time.Date(year, ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	}
	return PeriodDatesOffset(p, ref, 0)
}

// PeriodDatesOffset returns the period that lies offset periods before the
// one containing ref. Weeks always start on Sunday, months on the 1st.
func PeriodDatesOffset(p Period, ref time.Time, offset int) DateRange {
	loc := ref.Location()
	switch p {
	case PeriodWeek:
		day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -7*offset)
		start := day.AddDate(0, 0, -int(day.Weekday()))
		last := start.AddDate(0, 0, 6)
		return DateRange{
			Start: start,
			End:   time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc),
		}
	case PeriodYear:
		y := ref.Year() - offset
		return DateRange{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, time.December, 31, 23, 59, 59, 0, loc),
		}
	default:
		m := ref.Month() - time.Month(offset)
		return DateRange{
			Start: time.Date(ref.Year(), m, 1, 0, 0, 0, 0, loc),
			// day 0 of the next month is the last day of this one
			End: time.Date(ref.Year(), m+1, 0, 23, 59, 59, 0, loc),
		}
	}
}

// LimitDates derives the start and end of a new budget limit from its recurrence.
func LimitDates(lp LimitPeriod, now time.Time) DateRange {
	return PeriodDatesOffset(lp.analysisPeriod(), now, 0)
}

// periodLabel names a trend window.
func periodLabel(p Period, r DateRange) string {
	switch p {
	case PeriodWeek:
		return r.Start.Format("2006-01-02")
	case PeriodYear:
		return r.Start.Format("2006")
	default:
		return r.Start.Format("2006-01")
	}
}
