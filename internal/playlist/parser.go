package playlist

import "strings"

const fieldDelimiter = ","

// Parser converts raw list text into entries for a given deployment mode
type Parser struct {
	mode Mode
}

// NewParser creates a parser for the given mode. Unknown modes fall back to youtube.
func NewParser(mode Mode) *Parser {
	if !mode.Valid() {
		mode = ModeYouTube
	}
	return &Parser{mode: mode}
}

// Mode returns the deployment mode the parser was built for
func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse splits rawText into lines and returns one entry per line with an
// extractable reference, in input order. Lines without a reference are dropped
// silently and a missing or unparsable duration becomes 0.
func (p *Parser) Parse(rawText string) []Entry {
	lines := strings.Split(rawText, "\n")
	entries := make([]Entry, 0, len(lines))

	for _, line := range lines {
		entry, ok := p.parseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// parseLine parses a single "reference[,duration]" line
func (p *Parser) parseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}

	// Only the first two fields matter; anything after a second comma is ignored
	fields := strings.Split(line, fieldDelimiter)

	reference, ok := p.extractReference(fields[0])
	if !ok {
		return Entry{}, false
	}

	var duration int64
	if len(fields) > 1 {
		duration = ParseDuration(fields[1])
	}

	return Entry{Reference: reference, DurationSeconds: duration}, true
}

// extractReference resolves the reference field according to the parser mode
func (p *Parser) extractReference(field string) (string, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", false
	}

	switch p.mode {
	case ModeLocal:
		return field, true
	default:
		return ExtractVideoID(field)
	}
}

