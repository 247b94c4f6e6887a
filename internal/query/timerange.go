package query

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateRange is an inclusive calendar-date interval. Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether d falls inside the range, ignoring time of day.
func (r DateRange) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(dateLayout) + ".." + r.End.Format(dateLayout)
}

const dateLayout = "2006-01-02"

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// lastOfMonth relies on time.Date normalizing day 0 to the previous month's
// last day, which accounts for leap years.
func lastOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func monthRange(year int, month time.Month) DateRange {
	return DateRange{
		Start: firstOfMonth(year, month),
		End:   lastOfMonth(year, month),
		Label: fmt.Sprintf("tháng %d/%d", int(month), year),
	}
}

type rangeRule struct {
	name    string
	phrases vocabulary
	build   func(today time.Time) DateRange
}

// rangeRules are evaluated in order; the first rule whose phrase occurs in the
// question decides the range.
var rangeRules = []rangeRule{
	{
		name:    "today",
		phrases: vocabulary{"hôm nay", "today"},
		build: func(today time.Time) DateRange {
			return DateRange{Start: today, End: today, Label: "hôm nay"}
		},
	},
	{
		name:    "yesterday",
		phrases: vocabulary{"hôm qua", "yesterday"},
		build: func(today time.Time) DateRange {
			d := today.AddDate(0, 0, -1)
			return DateRange{Start: d, End: d, Label: "hôm qua"}
		},
	},
	{
		name:    "this week",
		phrases: vocabulary{"tuần này", "tuần nay", "this week"},
		build: func(today time.Time) DateRange {
			return DateRange{Start: weekStart(today), End: today, Label: "tuần này"}
		},
	},
	{
		name:    "last week",
		phrases: vocabulary{"tuần trước", "tuần qua", "last week"},
		build: func(today time.Time) DateRange {
			start := weekStart(today)
			return DateRange{
				Start: start.AddDate(0, 0, -7),
				End:   start.AddDate(0, 0, -1),
				Label: "tuần trước",
			}
		},
	},
	{
		name:    "this month",
		phrases: vocabulary{"tháng này", "tháng nay", "this month"},
		build: func(today time.Time) DateRange {
			return DateRange{
				Start: firstOfMonth(today.Year(), today.Month()),
				End:   today,
				Label: fmt.Sprintf("tháng %d/%d", int(today.Month()), today.Year()),
			}
		},
	},
	{
		name:    "last month",
		phrases: vocabulary{"tháng trước", "last month"},
		build: func(today time.Time) DateRange {
			prev := firstOfMonth(today.Year(), today.Month()).AddDate(0, -1, 0)
			return monthRange(prev.Year(), prev.Month())
		},
	},
	{
		name:    "this year",
		phrases: vocabulary{"năm nay", "this year"},
		build: func(today time.Time) DateRange {
			return DateRange{
				Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
				End:   today,
				Label: fmt.Sprintf("năm %d", today.Year()),
			}
		},
	},
	{
		name:    "last year",
		phrases: vocabulary{"năm ngoái", "năm trước", "năm rồi", "last year"},
		build: func(today time.Time) DateRange {
			y := today.Year() - 1
			return DateRange{
				Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
				Label: fmt.Sprintf("năm %d", y),
			}
		},
	},
	{
		name: "last 3 months",
		phrases: vocabulary{
			"3 tháng qua", "3 tháng gần đây", "3 tháng gần nhất",
			"ba tháng qua", "ba tháng gần đây",
			"last 3 months", "past 3 months", "last three months", "past three months",
		},
		build: func(today time.Time) DateRange {
			return DateRange{Start: today.AddDate(0, 0, -90), End: today, Label: "3 tháng gần đây"}
		},
	},
	{
		name:    "last quarter",
		phrases: vocabulary{"quý trước", "quý vừa rồi", "last quarter"},
		build: func(today time.Time) DateRange {
			q := (int(today.Month()) - 1) / 3
			year := today.Year()
			q--
			if q < 0 {
				q = 3
				year--
			}
			first := time.Month(q*3 + 1)
			return DateRange{
				Start: firstOfMonth(year, first),
				End:   lastOfMonth(year, first+2),
				Label: fmt.Sprintf("quý %d/%d", q+1, year),
			}
		},
	},
}

func weekStart(today time.Time) time.Time {
	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	return today.AddDate(0, 0, -offset)
}

var explicitMonthRe = regexp.MustCompile(`(?:tháng|thang|month)\s*(\d{1,2})\b(?:\s*/\s*(\d{4})\b)?`)

// ResolveTimeRange maps the time expression in a question to a concrete range
// anchored at now. It reports false when the question carries no recognizable
// time expression or names an invalid month.
func ResolveTimeRange(question string, now time.Time) (DateRange, bool) {
	return resolveTimeRange(padded(Normalize(question)), dateOnly(now))
}

func resolveTimeRange(q string, today time.Time) (DateRange, bool) {
	for _, rule := range rangeRules {
		if rule.phrases.matchIn(q) {
			return rule.build(today), true
		}
	}
	return explicitMonth(q, today)
}

func explicitMonth(q string, today time.Time) (DateRange, bool) {
	m := explicitMonthRe.FindStringSubmatch(q)
	if m == nil {
		return DateRange{}, false
	}
	return monthOf(m[1], m[2], today)
}

func monthOf(monthStr, yearStr string, today time.Time) (DateRange, bool) {
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return DateRange{}, false
	}
	year := today.Year()
	if yearStr != "" {
		if year, err = strconv.Atoi(yearStr); err != nil {
			return DateRange{}, false
		}
	}
	return monthRange(year, time.Month(month)), true
}

var (
	monthNames = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	monthNameRe = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b(?:\s+(\d{4})\b)?`)
	bareMonthRe = regexp.MustCompile(`(?:^|\s)(\d{1,2})\s*/\s*(\d{4})\b`)
)

// inlineMonth recognizes month references that carry no "month" keyword:
// English month names ("march 2024") and bare "MM/YYYY".
func inlineMonth(q string, today time.Time) (DateRange, bool) {
	// "may" alone is far more often the verb.
	if m := monthNameRe.FindStringSubmatch(q); m != nil && (m[1] != "may" || m[2] != "") {
		for i, name := range monthNames {
			if name == m[1] {
				return monthOf(strconv.Itoa(i+1), m[2], today)
			}
		}
	}
	if m := bareMonthRe.FindStringSubmatch(q); m != nil {
		return monthOf(m[1], m[2], today)
	}
	return DateRange{}, false
}
