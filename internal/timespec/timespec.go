// Package timespec expands hour and minute specifications such as
// "8..17:00/30" or "2,22:30" into explicit sets of values.
//
// A specification is a comma-separated list of terms:
//
//	N       a single value
//	A..B    every value from A to B inclusive
//	A/S     A, A+S, A+2S, ... up to the upper bound of the field
//	A..B/S  as above, but stopping at B
//	*       every value of the field
//	*/S     every S-th value starting at the lower bound
//
// Every number must be an integer inside the field's range.
package timespec

import (
	"fmt"
	"strconv"
	"strings"
)

// Set is an immutable set of small integers (0-63).
type Set uint64

func (s Set) Has(value int) bool {
	if value < 0 || value > 63 {
		return false
	}
	return s&(1<<uint(value)) != 0
}

func (s *Set) set(value int) { *s |= 1 << uint(value) }

// Empty reports whether the set holds no values.
func (s Set) Empty() bool { return s == 0 }

// Len returns the number of values in the set.
func (s Set) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Values returns the members in ascending order.
func (s Set) Values() []int {
	values := make([]int, 0, s.Len())
	for v := 0; v < 64; v++ {
		if s.Has(v) {
			values = append(values, v)
		}
	}
	return values
}

func (s Set) String() string {
	parts := make([]string, 0, s.Len())
	for _, v := range s.Values() {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// Parse expands text into the set of values it names within [min, max].
// Parsing stops at the first invalid term; no partial set is returned.
func Parse(text string, min, max int) (Set, error) {
	if min < 0 || max > 63 || min > max {
		return 0, fmt.Errorf("timespec: unsupported field range %d..%d", min, max)
	}

	var result Set
	for _, term := range strings.Split(text, ",") {
		bits, err := parseTerm(strings.TrimSpace(term), min, max)
		if err != nil {
			return 0, err
		}
		result |= bits
	}
	return result, nil
}

func parseTerm(term string, min, max int) (Set, error) {
	if term == "*" {
		return fill(min, max, 1), nil
	}

	rangeExpr, stepExpr, stepped := strings.Cut(term, "/")

	step := 1
	if stepped {
		var err error
		step, err = parseNumber(strings.TrimSpace(stepExpr), min, max)
		if err != nil {
			return 0, err
		}
		if step == 0 {
			return 0, &ParseError{Kind: ZeroStep, Token: strings.TrimSpace(stepExpr), Min: min, Max: max}
		}
	}

	rangeExpr = strings.TrimSpace(rangeExpr)
	if rangeExpr == "*" {
		return fill(min, max, step), nil
	}

	if startExpr, endExpr, isRange := strings.Cut(rangeExpr, ".."); isRange {
		start, err := parseNumber(strings.TrimSpace(startExpr), min, max)
		if err != nil {
			return 0, err
		}
		end, err := parseNumber(strings.TrimSpace(endExpr), min, max)
		if err != nil {
			return 0, err
		}
		if start > end {
			return 0, &ParseError{Kind: Inverted, Token: rangeExpr, Min: min, Max: max}
		}
		return fill(start, end, step), nil
	}

	start, err := parseNumber(rangeExpr, min, max)
	if err != nil {
		return 0, err
	}
	if !stepped {
		return fill(start, start, 1), nil
	}
	return fill(start, max, step), nil
}

func parseNumber(token string, min, max int) (int, error) {
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Kind: NotInteger, Token: token, Min: min, Max: max}
	}
	if value < min || value > max {
		return 0, &ParseError{Kind: OutOfRange, Token: token, Min: min, Max: max}
	}
	return value, nil
}

func fill(from, to, step int) Set {
	var s Set
	for v := from; v <= to; v += step {
		s.set(v)
	}
	return s
}
