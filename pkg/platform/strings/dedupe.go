// Package strings holds small string helpers shared by request parsing code.
package strings

import "strings"

// DedupeAndTrimLower normalizes each value to trimmed lower case and keeps
// the first occurrence of each, dropping blanks.
//
//	DedupeAndTrimLower([]string{" Gender ", "fav_place", "GENDER", ""})
//	// []string{"gender", "fav_place"}
func DedupeAndTrimLower(values []string) []string {
	out := values[:0:0]
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
