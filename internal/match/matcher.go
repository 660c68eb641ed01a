// Package match implements the filename predicates used by searches.
package match

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a regex pattern fails to compile
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrUnknownMode is returned for mode names or codes outside the closed set
	ErrUnknownMode = errors.New("unknown match mode")
)

// Mode selects the matching strategy
type Mode int

const (
	Substring Mode = iota
	Mask
	Regex
)

var modeNames = [...]string{
	Substring: "substring",
	Mask:      "mask",
	Regex:     "regex",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Next cycles to the following mode, wrapping around
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode accepts a mode name or its numeric code (0, 1, 2)
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	if code, err := strconv.Atoi(s); err == nil && code >= 0 && code < len(modeNames) {
		return Mode(code), nil
	}
	return Substring, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Matcher tests candidate names against one pattern under one mode.
// It is immutable and safe for concurrent use.
type Matcher struct {
	mode    Mode
	pattern string
	mask    []rune
	re      *regexp.Regexp
}

// New builds a matcher. Regex patterns are compiled here, once per search.
func New(mode Mode, pattern string) (*Matcher, error) {
	m := &Matcher{mode: mode, pattern: pattern}

	switch mode {
	case Substring:
	case Mask:
		m.mask = []rune(pattern)
	case Regex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		m.re = re
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	return m, nil
}

// Mode returns the matching strategy
func (m *Matcher) Mode() Mode {
	return m.mode
}

// Pattern returns the raw pattern
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether candidate is accepted
func (m *Matcher) Match(candidate string) bool {
	switch m.mode {
	case Substring:
		return strings.Contains(candidate, m.pattern)
	case Mask:
		return matchMask([]rune(candidate), m.mask)
	case Regex:
		// Unanchored unless the pattern anchors itself
		return m.re.MatchString(candidate)
	}
	return false
}
