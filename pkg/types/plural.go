package types

import "strings"

// singularEndings are "s" endings that usually mark a singular noun
// ("address", "status", "analysis").
var singularEndings = []string{"ss", "us", "is"}

// IsPlural reports whether name looks like a pluralized noun. The check is a
// deterministic suffix heuristic used both for resource types and for
// deciding which attributes are array-valued.
func IsPlural(name string) bool {
	n := strings.ToLower(name)
	if len(n) < 2 || !strings.HasSuffix(n, "s") {
		return false
	}
	for _, end := range singularEndings {
		if strings.HasSuffix(n, end) {
			return false
		}
	}
	return true
}
