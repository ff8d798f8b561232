package middleware

import "strings"

// AllowList is the set of path patterns exempt from the identity requirement.
// A pattern ending in "/**" matches the path itself and everything below it;
// any other pattern matches exactly.
type AllowList struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewAllowList(patterns ...string) *AllowList {
	al := &AllowList{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		if rest, ok := strings.CutSuffix(p, "/**"); ok {
			al.prefixes = append(al.prefixes, rest)
			continue
		}
		al.exact[p] = struct{}{}
	}
	return al
}

// Match reports whether the path is exempt.
func (al *AllowList) Match(path string) bool {
	if _, ok := al.exact[path]; ok {
		return true
	}
	for _, prefix := range al.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
