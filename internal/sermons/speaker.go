package sermons

import (
	"regexp"
	"strings"
)

// UnknownSpeaker is used when neither title nor description names one.
const UnknownSpeaker = "Unknown Speaker"

var (
	titleSpeaker       = regexp.MustCompile(`(?i)\b(?:by|from):?\s*([^-\n]+)`)
	descriptionSpeaker = regexp.MustCompile(`(?i)(?:speaker|preacher|pastor):?\s*([^\n<]+)`)
)

// ExtractSpeaker derives a speaker name from a video's title ("... - by
// Pastor John") or, failing that, a "Speaker:"/"Preacher:"/"Pastor:" line
// in its description.
func ExtractSpeaker(title, description string) string {
	if name := firstGroup(titleSpeaker, title); name != "" {
		return name
	}
	if name := firstGroup(descriptionSpeaker, description); name != "" {
		return name
	}
	return UnknownSpeaker
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
