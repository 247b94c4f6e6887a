package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2024-03-15 is a Friday in a leap year.
var friday = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestResolveTimeRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		question string
		start    time.Time
		end      time.Time
		label    string
	}{
		{"chi tiêu hôm nay", day(2024, 3, 15), day(2024, 3, 15), "hôm nay"},
		{"hôm qua tôi tiêu bao nhiêu", day(2024, 3, 14), day(2024, 3, 14), "hôm qua"},
		{"tuần này", day(2024, 3, 11), day(2024, 3, 15), "tuần này"},
		{"tuần trước", day(2024, 3, 4), day(2024, 3, 10), "tuần trước"},
		{"tháng này", day(2024, 3, 1), day(2024, 3, 15), "tháng 3/2024"},
		{"tháng trước", day(2024, 2, 1), day(2024, 2, 29), "tháng 2/2024"},
		{"năm nay", day(2024, 1, 1), day(2024, 3, 15), "năm 2024"},
		{"năm ngoái", day(2023, 1, 1), day(2023, 12, 31), "năm 2023"},
		{"3 tháng gần đây", day(2023, 12, 16), day(2024, 3, 15), "3 tháng gần đây"},
		{"3 tháng qua", day(2023, 12, 16), day(2024, 3, 15), "3 tháng gần đây"},
		{"quý trước", day(2023, 10, 1), day(2023, 12, 31), "quý 4/2023"},
		{"tháng 3/2024", day(2024, 3, 1), day(2024, 3, 31), "tháng 3/2024"},
		{"tháng 2", day(2024, 2, 1), day(2024, 2, 29), "tháng 2/2024"},
		{"tháng 2/2023", day(2023, 2, 1), day(2023, 2, 28), "tháng 2/2023"},
		{"tháng 2/2100", day(2100, 2, 1), day(2100, 2, 28), "tháng 2/2100"},
		{"Last Month", day(2024, 2, 1), day(2024, 2, 29), "tháng 2/2024"},
	}
	for _, tc := range cases {
		r, ok := ResolveTimeRange(tc.question, friday)
		require.True(t, ok, "question %q", tc.question)
		require.Equal(t, tc.start, r.Start, "start for %q", tc.question)
		require.Equal(t, tc.end, r.End, "end for %q", tc.question)
		require.Equal(t, tc.label, r.Label, "label for %q", tc.question)
	}
}

func TestResolveTimeRangeNoRange(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"tổng chi tiêu", "tháng 13", "tháng 0/2024", ""} {
		_, ok := ResolveTimeRange(q, friday)
		require.False(t, ok, "question %q", q)
	}
}

func TestResolveTimeRangeFirstRuleWins(t *testing.T) {
	t.Parallel()

	r, ok := ResolveTimeRange("hôm nay và tháng trước", friday)
	require.True(t, ok)
	require.Equal(t, "hôm nay", r.Label)
}

func TestResolveTimeRangeWeekBoundaries(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)
	r, ok := ResolveTimeRange("this week", monday)
	require.True(t, ok)
	require.Equal(t, day(2024, 3, 11), r.Start)
	require.Equal(t, day(2024, 3, 11), r.End)

	sunday := time.Date(2024, time.March, 17, 23, 0, 0, 0, time.UTC)
	r, ok = ResolveTimeRange("tuần này", sunday)
	require.True(t, ok)
	require.Equal(t, day(2024, 3, 11), r.Start)

	r, ok = ResolveTimeRange("last week", sunday)
	require.True(t, ok)
	require.Equal(t, day(2024, 3, 4), r.Start)
	require.Equal(t, day(2024, 3, 10), r.End)
}

func TestResolveTimeRangeQuarterRollover(t *testing.T) {
	t.Parallel()

	r, ok := ResolveTimeRange("last quarter", time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, day(2024, 1, 1), r.Start)
	require.Equal(t, day(2024, 3, 31), r.End)
	require.Equal(t, "quý 1/2024", r.Label)

	r, ok = ResolveTimeRange("quý trước", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, day(2024, 7, 1), r.Start)
	require.Equal(t, day(2024, 9, 30), r.End)
}

func TestResolveTimeRangeLastMonthInJanuary(t *testing.T) {
	t.Parallel()

	r, ok := ResolveTimeRange("tháng trước", time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, day(2024, 12, 1), r.Start)
	require.Equal(t, day(2024, 12, 31), r.End)
}

func TestResolveTimeRangeIsStableAndOrdered(t *testing.T) {
	t.Parallel()

	phrases := []string{
		"hôm nay", "hôm qua", "tuần này", "tuần trước", "tháng này", "tháng trước",
		"năm nay", "năm ngoái", "3 tháng gần đây", "quý trước", "tháng 2",
	}
	for now := day(2024, 1, 1); now.Year() == 2024; now = now.AddDate(0, 0, 1) {
		for _, p := range phrases {
			first, ok := ResolveTimeRange(p, now)
			require.True(t, ok)
			second, _ := ResolveTimeRange(p, now)
			require.Equal(t, first, second)
			require.False(t, first.Start.After(first.End), "%q at %s", p, now.Format(dateLayout))
		}
	}
}

func TestInlineMonth(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 15)

	r, ok := inlineMonth(padded(Normalize("spent in March 2023")), today)
	require.True(t, ok)
	require.Equal(t, day(2023, 3, 1), r.Start)
	require.Equal(t, day(2023, 3, 31), r.End)

	r, ok = inlineMonth(padded(Normalize("chi tiêu 02/2024")), today)
	require.True(t, ok)
	require.Equal(t, day(2024, 2, 29), r.End)

	_, ok = inlineMonth(padded(Normalize("may i see my spending")), today)
	require.False(t, ok)

	r, ok = inlineMonth(padded(Normalize("may 2024 spending")), today)
	require.True(t, ok)
	require.Equal(t, day(2024, 5, 1), r.Start)
}

func TestDateRangeContains(t *testing.T) {
	t.Parallel()

	r := monthRange(2024, time.March)
	require.True(t, r.Contains(day(2024, 3, 1)))
	require.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	require.False(t, r.Contains(day(2024, 4, 1)))
	require.False(t, r.Contains(day(2024, 2, 29)))
}
