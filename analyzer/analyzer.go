package analyzer

import (
	"context"
	"fmt"
	"github.com/kcz17/loganalyzer/config"
	"github.com/kcz17/loganalyzer/logfile"
	"github.com/kcz17/loganalyzer/logging"
	"github.com/kcz17/loganalyzer/parsing"
	"github.com/kcz17/loganalyzer/publishing"
	"github.com/kcz17/loganalyzer/report"
	"github.com/rs/zerolog/log"
	"path/filepath"
)

// Outcome describes how a successful run ended.
type Outcome int

const (
	ReportWritten Outcome = iota
	NoLogfile
	ReportExists
)

func (o Outcome) String() string {
	switch o {
	case ReportWritten:
		return "ReportWritten"
	case NoLogfile:
		return "NoLogfile"
	case ReportExists:
		return "ReportExists"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Analyzer turns the latest log file of a directory into an HTML report.
type Analyzer struct {
	config    config.Config
	logger    logging.Logger
	publisher publishing.Publisher
	clock     Clock
}

func NewAnalyzer(config config.Config, logger logging.Logger, publisher publishing.Publisher) *Analyzer {
	return &Analyzer{
		config:    config,
		logger:    logger,
		publisher: publisher,
		clock:     realtimeClock{},
	}
}

// Run performs one analysis. Finding no log file, or finding the report for
// the latest log file already written, is not an error. No report is written
// when Run returns an error.
func (a *Analyzer) Run(ctx context.Context) (Outcome, error) {
	start := a.clock.Now()

	latest, err := logfile.Find(a.config.LogDir)
	if err != nil {
		return 0, err
	}
	if latest.IsZero() {
		log.Info().Str("dir", a.config.LogDir).Msg("no log files found")
		return NoLogfile, nil
	}
	log.Info().Str("file", latest.Path).Str("date", latest.Date.Format("2006-01-02")).Msg("found latest log file")

	name := report.Name(latest.Date)
	reportPath := filepath.Join(a.config.ReportDir, name)
	exists, err := report.Exists(reportPath)
	if err != nil {
		return 0, err
	}
	if exists {
		log.Info().Str("report", reportPath).Msg("report already exists, nothing to do")
		return ReportExists, nil
	}

	tmpl, err := report.ReadTemplate(a.config.TemplateFilename)
	if err != nil {
		return 0, err
	}

	result, err := parsing.Aggregate(ctx, logfile.Lines(latest), a.config.ParsingErrorLimit)
	if err != nil {
		return 0, fmt.Errorf("unable to analyze %s: %w", latest.Path, err)
	}
	log.Info().
		Int("lines", result.Lines).
		Int("requests", result.Count()).
		Int("errors", result.Errors).
		Float64("error_rate", result.ErrorRate()).
		Msg("log file parsed")

	rows := report.Build(result.ResponseTimes, a.config.ReportSize)
	content, err := report.Render(tmpl, rows)
	if err != nil {
		return 0, err
	}

	if err := a.publisher.Publish(ctx, name, []byte(content)); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := report.Write(reportPath, []byte(content)); err != nil {
		return 0, err
	}
	log.Info().Str("report", reportPath).Int("urls", len(rows)).Msg("report saved")

	a.logger.LogRun(logging.RunSummary{
		Logfile:     latest.Path,
		LogDate:     latest.Date,
		Report:      reportPath,
		Lines:       result.Lines,
		Requests:    result.Count(),
		Errors:      result.Errors,
		ErrorRate:   result.ErrorRate(),
		URLs:        len(result.ResponseTimes.URLs()),
		RequestTime: result.Duration(),
		Elapsed:     a.clock.Now().Sub(start),
		Rows:        rows,
	})
	return ReportWritten, nil
}
