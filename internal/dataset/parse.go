package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var scaleSuffixes = map[byte]float64{
	'k': 1e3,
	'm': 1e6,
}

// ParseError reports a count cell that is not a plain or k/m scaled number.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as count: %s", e.Input, e.Reason)
}

// ParseScaledCount converts human readable counts like "1.2k", "3m ratings"
// or "12,345" into integers. Only the first whitespace separated token is used.
func ParseScaledCount(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, &ParseError{Input: text, Reason: "empty value"}
	}

	s := strings.ReplaceAll(fields[0], ",", "")
	if s == "" {
		return 0, &ParseError{Input: text, Reason: "no digits"}
	}

	// plain integers must stay exact, no float round trip
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, &ParseError{Input: text, Reason: "negative count"}
		}
		return n, nil
	}

	factor := 1.0
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		f, ok := scaleSuffixes[lower(last)]
		if !ok {
			return 0, &ParseError{Input: text, Reason: fmt.Sprintf("unknown scale suffix %q", string(last))}
		}
		factor = f
		s = s[:len(s)-1]
	}

	if s == "" {
		return 0, &ParseError{Input: text, Reason: "no numeric value before suffix"}
	}

	if !isDecimal(s) {
		return 0, &ParseError{Input: text, Reason: "not a number"}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: text, Reason: "not a number"}
	}

	// float64(math.MaxInt64) rounds up to 2^63, anything at or above overflows
	scaled := math.Round(v * factor)
	if scaled >= math.MaxInt64 {
		return 0, &ParseError{Input: text, Reason: "count out of range"}
	}

	return int64(scaled), nil
}

// isDecimal accepts digits with at most one dot, e.g. "12", "1.5", ".5"
func isDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}

	return digits > 0 && dots <= 1
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}

	return b
}
