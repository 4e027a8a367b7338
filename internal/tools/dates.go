// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"errors"
	"regexp"
	"time"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// ErrInvalidRange is wrapped by argument errors whose start date falls after
// the end date.
var ErrInvalidRange = errors.New("start date is after end date")

// acceptedDate lists the accepted input shapes: YYYY-MM-DD, YYYY/MM/DD and
// MM/DD/YYYY.
var acceptedDate = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
}

// ParseDate parses a calendar date in one of the accepted shapes and returns
// it as a UTC midnight. Impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	for _, re := range acceptedDate {
		if !re.MatchString(s) {
			continue
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// dateArg parses a required date argument.
func dateArg(field, s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, &ArgumentError{Msg: "Invalid " + field + " format: " + s + ". Use YYYY-MM-DD format.", Err: err}
	}
	return t, nil
}

// optionalDate parses an optional date argument into the YYYY-MM-DD form
// sent upstream. Empty input yields "".
func optionalDate(field, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := dateArg(field, s)
	if err != nil {
		return "", err
	}
	return t.Format(types.DateLayout), nil
}

// checkRange rejects from > to. Either bound may be empty.
func checkRange(from, to string) error {
	if from == "" || to == "" || from <= to {
		return nil
	}
	return &ArgumentError{Msg: "Invalid date range: " + from + " is after " + to + ".", Err: ErrInvalidRange}
}
