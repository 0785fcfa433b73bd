package util

import (
	"regexp"
)

var (
	uuidRegex     = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	teamNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]{1,63}$`)
)

func IsValidUUID(s string) bool {
	if s == "" {
		return false
	}
	return uuidRegex.MatchString(s)
}

// IsValidTeamName bounds team names to printable, query-safe identifiers.
func IsValidTeamName(s string) bool {
	return teamNameRegex.MatchString(s)
}
