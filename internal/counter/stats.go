package counter

import (
	"time"

	"github.com/abcreative1/soulcount/internal/store"
)

// chartFloor keeps the chart scale from collapsing when all values are tiny.
const chartFloor = 5

// DayCount is one bar of an activity chart.
type DayCount struct {
	Date  string // "YYYY-MM-DD"
	Label string // narrow weekday letter
	Value int
}

// Summary aggregates the whole collection for the overview screen.
type Summary struct {
	TotalLifetime   int
	TodayTotal      int
	TasbihCount     int
	AggregatedDaily map[string]int
	MostActive      *store.Tasbih
}

// WeekSeries derives the activity for the 7 local calendar days ending at
// now from a daily history map. Days without ticks appear with value 0.
func WeekSeries(daily map[string]int, now time.Time) []DayCount {
	series := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := dateKey(d)
		series = append(series, DayCount{
			Date:  key,
			Label: d.Weekday().String()[:1],
			Value: daily[key],
		})
	}
	return series
}

// ChartMax returns the chart scale for a series, never below chartFloor.
func ChartMax(series []DayCount) int {
	maxVal := chartFloor
	for _, dc := range series {
		if dc.Value > maxVal {
			maxVal = dc.Value
		}
	}
	return maxVal
}

// Summarize computes cross-collection totals from a snapshot. The most
// active tasbih is the one with the highest lifetime total; ties break
// toward the lowest id so the answer does not depend on insertion order.
func Summarize(tasbihs []store.Tasbih, now time.Time) Summary {
	sum := Summary{
		TasbihCount:     len(tasbihs),
		AggregatedDaily: map[string]int{},
	}
	for i := range tasbihs {
		t := tasbihs[i]
		sum.TotalLifetime += t.TotalCount
		for day, n := range t.DailyCounts {
			sum.AggregatedDaily[day] += n
		}
		if sum.MostActive == nil ||
			t.TotalCount > sum.MostActive.TotalCount ||
			(t.TotalCount == sum.MostActive.TotalCount && t.ID < sum.MostActive.ID) {
			top := t
			sum.MostActive = &top
		}
	}
	sum.TodayTotal = sum.AggregatedDaily[dateKey(now)]
	return sum
}
