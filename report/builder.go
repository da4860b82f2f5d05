package report

import (
	"fmt"
	"github.com/kcz17/loganalyzer/responsetimes"
	"github.com/kcz17/loganalyzer/stats"
	"sort"
)

// Row is the aggregated statistics of one URL as shown in the report. Times
// are in seconds; TimePerc and CountPerc are fractions of the totals of the
// whole log, not of the rows shown.
type Row struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	TimeSum   float64 `json:"time_sum"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
	TimePerc  float64 `json:"time_perc"`
	CountPerc float64 `json:"count_perc"`
}

// Build ranks every URL in times by its summed request time, descending, and
// returns at most size rows. URLs with equal sums keep the order in which they
// were first seen. A size of zero or less returns every row.
func Build(times *responsetimes.Collector, size int) []Row {
	totalCount := float64(times.Len())
	totalTime := times.Total()

	urls := times.URLs()
	rows := make([]Row, 0, len(urls))
	for _, url := range urls {
		summary, err := stats.Summarize(times.All(url))
		if err != nil {
			// Every URL in the collector has at least one sample.
			panic(fmt.Errorf("unexpected err in report.Build() while summarizing %s: %w", url, err))
		}

		rows = append(rows, Row{
			URL:       url,
			Count:     summary.Count,
			TimeSum:   summary.Sum,
			TimeAvg:   summary.Mean,
			TimeMax:   summary.Max,
			TimeMed:   summary.Median,
			TimePerc:  share(summary.Sum, totalTime),
			CountPerc: share(float64(summary.Count), totalCount),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TimeSum > rows[j].TimeSum
	})

	if size > 0 && len(rows) > size {
		rows = rows[:size]
	}
	return rows
}

// share is 0 when whole is 0, e.g. time shares of a log whose requests all took zero seconds.
func share(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}
