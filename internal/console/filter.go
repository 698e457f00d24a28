package console

import "strings"

// Match is the client-side search filter: a pure, case-insensitive substring
// match over the schema's search fields. An empty term yields the full list.
// It never touches the server.
func Match[T any](records []T, term string, searchText func(T) []string) []T {
	out := make([]T, 0, len(records))
	needle := strings.ToLower(term)
	for _, rec := range records {
		if needle == "" || matches(searchText(rec), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
