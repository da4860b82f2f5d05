package parsing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lines follow the nginx ui_short log format:
//
//	$remote_addr  $remote_user $http_x_real_ip [$time_local] "$request" $status $body_bytes_sent
//	"$http_referer" "$http_user_agent" "$http_x_forwarded_for" "$http_X_REQUEST_ID" "$http_X_RB_USER"
//	$request_time
//
// Fields are split on single spaces. The double space after $remote_addr
// produces an empty field which counts towards the URL position.
const (
	fieldSeparator = " "
	urlField       = 7
)

var (
	ErrMalformedLine      = errors.New("malformed line")
	ErrURLNotRecognized   = errors.New("URL not recognized")
	ErrDurationNotNumeric = errors.New("duration not numeric")
)

// ParseError is returned for a log line which could not be parsed. Err is one
// of ErrMalformedLine, ErrURLNotRecognized or ErrDurationNotNumeric.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Entry is a single request read from a log line.
type Entry struct {
	URL      string
	Duration float64 // Duration is the request time in seconds.
}

// ParseLine extracts the request URL and request time from a log line.
func ParseLine(line string) (Entry, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) <= urlField {
		return Entry{}, &ParseError{Line: line, Err: ErrMalformedLine}
	}

	url := fields[urlField]
	if !strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "http") {
		return Entry{}, &ParseError{Line: line, Err: ErrURLNotRecognized}
	}

	// NaN and infinities parse as floats but would poison every total.
	duration, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return Entry{}, &ParseError{Line: line, Err: ErrDurationNotNumeric}
	}

	return Entry{URL: url, Duration: duration}, nil
}
