// Package search discovers playable media across the local library and
// remote providers.
package search

import (
	"regexp"
	"strconv"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO 8601 duration (the YouTube API's PT#H#M#S
// form) into seconds. Unparseable input yields 0.
func parseISODuration(raw string) int {
	match := isoDurationRe.FindStringSubmatch(raw)
	if match == nil {
		return 0
	}

	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}

	return atoi(match[1])*3600 + atoi(match[2])*60 + atoi(match[3])
}
