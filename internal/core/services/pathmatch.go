package services

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Score weights for where a query term appears in the file path.
const (
	filenameTermScore = 40
	folderTermScore   = 30
	pathTermScore     = 20
)

// termSeparators splits a query on whitespace and on the CJK comma,
// enumeration comma and semicolon variants.
var termSeparators = regexp.MustCompile(`[\s,，、;；]+`)

// splitQueryTerms breaks a query into lower-cased search terms.
func splitQueryTerms(query string) []string {
	var terms []string
	for _, t := range termSeparators.Split(query, -1) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// matchPathTerms scores a relative path against the query terms.
// A term found in the file name scores highest, a term in a parent
// folder name scores less, and a term elsewhere in the path least.
// The total is capped at 100. Returns the matched terms and score;
// an empty term list means no path match.
func matchPathTerms(relPath string, terms []string) ([]string, int) {
	lowerPath := strings.ToLower(filepath.ToSlash(relPath))
	filename := strings.ToLower(filepath.Base(relPath))

	dirs := strings.Split(filepath.ToSlash(filepath.Dir(relPath)), "/")

	var matched []string
	score := 0
	for _, term := range terms {
		if !strings.Contains(lowerPath, term) {
			continue
		}
		matched = append(matched, term)

		switch {
		case strings.Contains(filename, term):
			score += filenameTermScore
		case anyContains(dirs, term):
			score += folderTermScore
		default:
			score += pathTermScore
		}
	}

	if score > 100 {
		score = 100
	}
	return matched, score
}

func anyContains(parts []string, term string) bool {
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}
	return false
}
