package analyzer

import "time"

// Clock supplies the times used to measure how long a run took.
type Clock interface {
	Now() time.Time
}

type realtimeClock struct{}

func (realtimeClock) Now() time.Time { return time.Now() }
