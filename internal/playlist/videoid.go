package playlist

import "regexp"

// patternVideoID matches the watch, embed and short-link URL forms
var patternVideoID = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID returns the 11-character YouTube video ID found in rawURL.
// The second return value is false when no recognised form is present.
func ExtractVideoID(rawURL string) (string, bool) {
	matches := patternVideoID.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}
