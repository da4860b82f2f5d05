package logging

import (
	"context"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog/log"
	"path/filepath"
	"time"
)

const (
	influxDBWriteTimeout = 10 * time.Second
	// influxDBMaxURLPoints limits the per-URL points written for a run.
	influxDBMaxURLPoints = 10
)

// influxDBLogger logs the output to an external InfluxDB instance. A run
// produces a single batch, so points are written synchronously.
type influxDBLogger struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

func NewInfluxDBLogger(baseURL, authToken, org, bucket string) *influxDBLogger {
	client := influxdb2.NewClientWithOptions(baseURL, authToken, influxdb2.DefaultOptions())
	return &influxDBLogger{
		client: client,
		writer: client.WriteAPIBlocking(org, bucket),
	}
}

func (l *influxDBLogger) LogRun(summary RunSummary) {
	timestamp := time.Now()
	logfile := filepath.Base(summary.Logfile)

	points := []*write.Point{
		influxdb2.NewPointWithMeasurement("log_analyzer_run").
			AddTag("logfile", logfile).
			AddField("lines", summary.Lines).
			AddField("requests", summary.Requests).
			AddField("errors", summary.Errors).
			AddField("error_rate", summary.ErrorRate).
			AddField("urls", summary.URLs).
			AddField("request_time", summary.RequestTime).
			AddField("elapsed", summary.Elapsed.Seconds()).
			SetTime(timestamp),
	}

	rows := summary.Rows
	if len(rows) > influxDBMaxURLPoints {
		rows = rows[:influxDBMaxURLPoints]
	}
	for _, row := range rows {
		points = append(points, influxdb2.NewPointWithMeasurement("log_analyzer_url").
			AddTag("logfile", logfile).
			AddTag("url", row.URL).
			AddField("count", row.Count).
			AddField("time_sum", row.TimeSum).
			AddField("time_med", row.TimeMed).
			AddField("time_max", row.TimeMax).
			SetTime(timestamp))
	}

	ctx, cancel := context.WithTimeout(context.Background(), influxDBWriteTimeout)
	defer cancel()
	if err := l.writer.WritePoint(ctx, points...); err != nil {
		log.Error().Err(err).Msg("influxdb2 logging write error")
	}
}

func (l *influxDBLogger) Close() {
	l.client.Close()
}
