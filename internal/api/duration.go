package api

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatDuration renders an ISO-8601 duration such as "PT1H5M9S" as
// "1:05:09", or "m:ss" when there are no hours. Days fold into hours.
// Anything unparseable renders as "0:00".
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}

	part := func(i int) int {
		n, _ := strconv.Atoi(m[i])
		return n
	}
	hours := part(1)*24 + part(2)
	minutes := part(3)
	seconds := part(4)

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
