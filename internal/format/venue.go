package format

import (
	"regexp"
	"strings"
)

var (
	cityPrefixPattern   = regexp.MustCompile(`(?i)\s*\((?:NYC|London)\s*-\s*`)
	trailingParenthesis = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	firstParenthesis    = regexp.MustCompile(`\(([^)]+)\)`)
	locationCityPrefix  = regexp.MustCompile(`(?i)^(?:NYC|London)\s*-\s*`)
)

// VenueName rewrites "Venue (City - Location)" to "Venue (Location)".
// NYC and London prefixes are always stripped; city strips an additional prefix when given.
// Applying it twice yields the same result as applying it once.
func VenueName(venueName, city string) string {
	if venueName == "" {
		return ""
	}

	formatted := cityPrefixPattern.ReplaceAllString(venueName, " (")
	if city = strings.TrimSpace(city); city != "" {
		pattern := regexp.MustCompile(`(?i)\s*\(` + regexp.QuoteMeta(city) + `\s*-\s*`)
		formatted = pattern.ReplaceAllString(formatted, " (")
	}
	return formatted
}

// BaseVenueName removes a trailing "(...)" location from a venue name
func BaseVenueName(venueName string) string {
	return strings.TrimSpace(trailingParenthesis.ReplaceAllString(venueName, ""))
}

// LocationFromVenueName extracts the location inside the first parentheses,
// without any city prefix. Returns "" when the name has no location.
func LocationFromVenueName(venueName string) string {
	match := firstParenthesis.FindStringSubmatch(venueName)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(locationCityPrefix.ReplaceAllString(match[1], ""))
}
