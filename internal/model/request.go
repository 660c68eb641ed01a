package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/diskseek/internal/match"
)

// ErrRootNotDir is returned when the search root is missing or not a directory
var ErrRootNotDir = errors.New("search root is not a directory")

// SearchRequest describes one search. It is immutable once built.
type SearchRequest struct {
	Root           string
	Pattern        string
	Mode           match.Mode
	IncludeHidden  bool
	MatchExtension bool // match against "name.ext" instead of the bare stem

	matcher *match.Matcher
}

// NewSearchRequest validates the root and compiles the pattern.
// An invalid regex fails here, before any traversal starts.
func NewSearchRequest(root, pattern string, mode match.Mode, includeHidden, matchExtension bool) (SearchRequest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return SearchRequest{}, fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return SearchRequest{}, fmt.Errorf("%w: %v", ErrRootNotDir, err)
	}
	if !info.IsDir() {
		return SearchRequest{}, fmt.Errorf("%w: %s", ErrRootNotDir, absRoot)
	}

	m, err := match.New(mode, pattern)
	if err != nil {
		return SearchRequest{}, err
	}

	return SearchRequest{
		Root:           absRoot,
		Pattern:        pattern,
		Mode:           mode,
		IncludeHidden:  includeHidden,
		MatchExtension: matchExtension,
		matcher:        m,
	}, nil
}

// Matches reports whether a filename is accepted by this request
func (r SearchRequest) Matches(name string) bool {
	if r.matcher == nil {
		return false
	}
	return r.matcher.Match(r.Candidate(name))
}

// Candidate returns the string the matcher sees for a filename
func (r SearchRequest) Candidate(name string) string {
	if r.MatchExtension {
		return name
	}
	stem, _ := SplitName(name)
	return stem
}

// SplitName splits a filename into stem and extension (without the dot).
// A leading dot does not start an extension: ".bashrc" has no extension.
func SplitName(name string) (stem, ext string) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
