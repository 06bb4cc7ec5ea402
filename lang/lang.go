package lang

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// nearest returns the candidate most similar to name, or "" when no
// candidate resembles it. Used to suggest the pattern the caller probably
// meant when a lookup fails.
func nearest(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
