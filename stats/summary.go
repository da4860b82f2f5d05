package stats

import (
	"errors"
	"fmt"
	"github.com/montanaflynn/stats"
)

var ErrNoSamples = errors.New("no samples to summarize")

// Summary describes a set of response times in seconds.
type Summary struct {
	Count  int
	Sum    float64
	Mean   float64
	Max    float64
	Median float64
}

// Summarize calculates the summary statistics of samples, which must be
// non-empty. samples is not modified.
func Summarize(samples []float64) (Summary, error) {
	// The stats package requires input slices to be non-empty.
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	sum, err := stats.Sum(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("unexpected err while calculating sum: %w", err)
	}
	max, err := stats.Max(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("unexpected err while calculating max: %w", err)
	}
	median, err := Median(samples)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Count:  len(samples),
		Sum:    sum,
		Mean:   sum / float64(len(samples)),
		Max:    max,
		Median: median,
	}, nil
}

// Median returns the middle sample of an odd-length input and the mean of
// the two middle samples of an even-length input. The stats package sorts a
// copy, so samples keeps its order.
func Median(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	median, err := stats.Median(samples)
	if err != nil {
		return 0, fmt.Errorf("unexpected err while calculating median: %w", err)
	}
	return median, nil
}
