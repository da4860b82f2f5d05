package logging

import (
	"fmt"
	"github.com/kcz17/loganalyzer/config"
	"github.com/kcz17/loganalyzer/report"
	"io"
	"time"
)

const (
	DriverNoop     = "noop"
	DriverStdout   = "stdout"
	DriverInfluxDB = "influxdb"
)

// RunSummary describes one completed analysis run.
type RunSummary struct {
	Logfile string
	LogDate time.Time
	Report  string
	// Lines counts every line read, including those which failed to parse.
	Lines     int
	Requests  int
	Errors    int
	ErrorRate float64 // Percentage of errors relative to Requests.
	URLs      int
	// RequestTime is the summed request time of the log in seconds.
	RequestTime float64
	Elapsed     time.Duration
	Rows        []report.Row
}

// Logger receives run metrics. Implementations must not fail the run: write
// errors are reported through diagnostics only.
type Logger interface {
	LogRun(summary RunSummary)
	Close()
}

// NewLogger returns the Logger selected by the metrics driver. Table output of
// the stdout driver is written to out.
func NewLogger(metrics config.Metrics, out io.Writer) (Logger, error) {
	switch metrics.Driver {
	case "", DriverNoop:
		return NewNoopLogger(), nil
	case DriverStdout:
		return NewStdoutLogger(out), nil
	case DriverInfluxDB:
		if metrics.InfluxDB == nil {
			return nil, fmt.Errorf("expected influxdb settings for metrics driver %s", DriverInfluxDB)
		}
		influx := metrics.InfluxDB
		return NewInfluxDBLogger(influx.Host, influx.Token, influx.Org, influx.Bucket), nil
	default:
		return nil, fmt.Errorf("expected metrics driver one of {noop, stdout, influxdb}; got %s", metrics.Driver)
	}
}

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogRun(RunSummary) {
	return
}

func (*noopLogger) Close() {
	return
}
