// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Exclusions matches relative paths against gitignore-style patterns.
type Exclusions struct {
	patterns []string
	matcher  *ignore.GitIgnore
}

func (e *Exclusions) Match(name string) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	return e.matcher.MatchesPath(filepath.ToSlash(name))
}

func (e *Exclusions) Patterns() []string {
	if e == nil {
		return nil
	}
	return e.patterns
}

// NewExclusions returns nil if there are no patterns.
func NewExclusions(patterns []string) *Exclusions {
	lines := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); len(p) > 0 {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return &Exclusions{
		patterns: lines,
		matcher:  ignore.CompileIgnoreLines(lines...),
	}
}
