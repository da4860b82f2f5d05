package parsing

import (
	"context"
	"errors"
	"fmt"
	"github.com/kcz17/loganalyzer/responsetimes"
	"github.com/rs/zerolog/log"
	"iter"
)

// cancelCheckInterval is the number of lines read between context checks.
const cancelCheckInterval = 4096

var (
	// ErrNoRequests is returned when a log yields no parsable request, either
	// because it is empty or because every line failed to parse.
	ErrNoRequests     = errors.New("no requests parsed")
	ErrBudgetExceeded = errors.New("parsing error limit exceeded")
)

// BudgetExceededError is returned when the share of unparsable lines is above
// the configured limit. It matches ErrBudgetExceeded under errors.Is.
type BudgetExceededError struct {
	Rate   float64 // Rate is 100 * Errors / Total.
	Limit  float64
	Errors int
	Total  int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("parsing error limit exceeded: failed to parse %.2f%% (%d/%d) requests; limit is %.2f%%",
		e.Rate, e.Errors, e.Total, e.Limit)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// Result holds everything aggregated from one log file.
type Result struct {
	ResponseTimes *responsetimes.Collector
	// Errors is the number of lines which failed to parse.
	Errors int
	// Lines is the number of lines read, parsed or not.
	Lines int
}

// Count gets the number of requests parsed.
func (r *Result) Count() int {
	return r.ResponseTimes.Len()
}

// Duration gets the summed request time of every parsed request in seconds.
func (r *Result) Duration() float64 {
	return r.ResponseTimes.Total()
}

// ErrorRate is the percentage of parse errors relative to parsed requests.
func (r *Result) ErrorRate() float64 {
	if r.Count() == 0 {
		return 0
	}
	return 100 * float64(r.Errors) / float64(r.Count())
}

// Aggregate folds every line of lines into a Result. Lines which fail to parse
// are counted and skipped; an error yielded by lines aborts the aggregation.
// errorLimit is the largest tolerated ErrorRate, as a percentage.
func Aggregate(ctx context.Context, lines iter.Seq2[string, error], errorLimit float64) (*Result, error) {
	result := &Result{ResponseTimes: responsetimes.NewCollector()}

	for line, err := range lines {
		if err != nil {
			return nil, err
		}
		if result.Lines%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		result.Lines++

		entry, err := ParseLine(line)
		if err != nil {
			result.Errors++
			log.Debug().Err(err).Int("line", result.Lines).Msg("unable to parse log line")
			continue
		}
		result.ResponseTimes.Add(entry.URL, entry.Duration)
	}

	if result.Count() == 0 {
		return nil, fmt.Errorf("%w: %d of %d lines failed to parse", ErrNoRequests, result.Errors, result.Lines)
	}

	if rate := result.ErrorRate(); rate > errorLimit {
		return nil, &BudgetExceededError{
			Rate:   rate,
			Limit:  errorLimit,
			Errors: result.Errors,
			Total:  result.Count(),
		}
	}

	log.Debug().Int("errors", result.Errors).Int("requests", result.Count()).Msg("found parsing errors")
	return result, nil
}
