package logging

import (
	"fmt"
	"github.com/olekukonko/tablewriter"
	"io"
	"strconv"
)

// stdoutMaxRows limits the table printed by the stdout logger.
const stdoutMaxRows = 10

// stdoutLogger prints a summary and a table of the slowest URLs.
type stdoutLogger struct {
	out io.Writer
}

func NewStdoutLogger(out io.Writer) *stdoutLogger {
	return &stdoutLogger{out: out}
}

func (l *stdoutLogger) LogRun(summary RunSummary) {
	fmt.Fprintf(l.out, "%s: %d requests to %d urls, %d parse errors (%.2f%%), %.3fs request time, analyzed in %s\n",
		summary.Logfile, summary.Requests, summary.URLs, summary.Errors, summary.ErrorRate, summary.RequestTime, summary.Elapsed)

	rows := summary.Rows
	if len(rows) > stdoutMaxRows {
		rows = rows[:stdoutMaxRows]
	}
	if len(rows) == 0 {
		return
	}

	table := tablewriter.NewWriter(l.out)
	table.SetHeader([]string{"URL", "Count", "Time Sum", "Time Avg", "Time Max", "Time Med", "Time %", "Count %"})
	for _, row := range rows {
		table.Append([]string{
			row.URL,
			strconv.Itoa(row.Count),
			fmt.Sprintf("%.3f", row.TimeSum),
			fmt.Sprintf("%.3f", row.TimeAvg),
			fmt.Sprintf("%.3f", row.TimeMax),
			fmt.Sprintf("%.3f", row.TimeMed),
			fmt.Sprintf("%.2f", 100*row.TimePerc),
			fmt.Sprintf("%.2f", 100*row.CountPerc),
		})
	}
	table.Render()
}

func (*stdoutLogger) Close() {
	return
}
