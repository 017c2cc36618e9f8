package datasource

import (
	"strings"
	"unicode/utf8"
)

// Searchable reports whether a query is long enough to be sent to a geocoder
func Searchable(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinQueryLength
}
