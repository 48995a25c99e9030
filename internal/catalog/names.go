package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey returns the comparison key for a player or game name: the trimmed
// name, Unicode case folded.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether a and b name the same player or game.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// NormalizeNames trims every name, drops blanks and removes duplicates under
// case-insensitive comparison. The first spelling of each name wins and the
// input order is kept.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := NameKey(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// SplitNames splits a comma-delimited list and normalizes the result.
func SplitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeNames(strings.Split(s, ","))
}

// IndexName returns the position of name in names, or -1.
func IndexName(names []string, name string) int {
	key := NameKey(name)
	for i, n := range names {
		if NameKey(n) == key {
			return i
		}
	}
	return -1
}

// ContainsName reports whether names holds name under case-insensitive comparison.
func ContainsName(names []string, name string) bool {
	return IndexName(names, name) >= 0
}

// nameSet indexes names by key for repeated membership checks.
type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	set := make(nameSet, len(names))
	for _, n := range names {
		set[NameKey(n)] = struct{}{}
	}
	return set
}

func (s nameSet) has(name string) bool {
	_, ok := s[NameKey(name)]
	return ok
}
