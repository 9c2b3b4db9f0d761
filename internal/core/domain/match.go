package domain

import (
	"regexp"
	"strings"
)

var (
	titleArtistPattern = regexp.MustCompile(`Title:\s*(.*?)\s*\|\s*Artist:\s*(.*)`)
	titlePattern       = regexp.MustCompile(`Title:\s*(.*)`)
	artistPattern      = regexp.MustCompile(`Artist:\s*(.*)`)
)

// TrackMatch is a title/artist pair extracted from model output
// formatted as "Title: <song> | Artist: <artist>".
type TrackMatch struct {
	Title  string
	Artist string
}

// IsEmpty reports whether neither field was extracted.
func (m TrackMatch) IsEmpty() bool {
	return m.Title == "" && m.Artist == ""
}

// ParseTrackMatch extracts a title and artist from text.
// The strict "Title: x | Artist: y" form is tried first and sets ok.
// When it fails, each field is looked up on its own.
func ParseTrackMatch(text string) (match TrackMatch, ok bool) {
	if m := titleArtistPattern.FindStringSubmatch(text); m != nil {
		match.Title = strings.TrimSpace(m[1])
		match.Artist = strings.TrimSpace(m[2])
		ok = true
	}
	if match.Title == "" {
		if m := titlePattern.FindStringSubmatch(text); m != nil {
			match.Title = strings.TrimSpace(m[1])
		}
	}
	if match.Artist == "" {
		if m := artistPattern.FindStringSubmatch(text); m != nil {
			match.Artist = strings.TrimSpace(m[1])
		}
	}
	return match, ok
}

// ParseStrictTrackMatch extracts a title and artist only from the strict form.
func ParseStrictTrackMatch(text string) (TrackMatch, bool) {
	m := titleArtistPattern.FindStringSubmatch(text)
	if m == nil {
		return TrackMatch{}, false
	}
	return TrackMatch{
		Title:  strings.TrimSpace(m[1]),
		Artist: strings.TrimSpace(m[2]),
	}, true
}
