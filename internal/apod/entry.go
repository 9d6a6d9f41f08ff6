package apod

import (
	"maps"
	"strings"
	"time"
)

// DayLayout is the date format the API accepts and returns.
const DayLayout = "2006-01-02"

// FirstDay is the earliest date the archive serves.
var FirstDay = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// Field names used by the API.
const (
	FieldURL          = "url"
	FieldHDURL        = "hdurl"
	FieldTitle        = "title"
	FieldDate         = "date"
	FieldExplanation  = "explanation"
	FieldMediaType    = "media_type"
	FieldThumbnailURL = "thumbnail_url"
	FieldCopyright    = "copyright"
)

// MediaVideo marks entries whose url points at a video player.
const MediaVideo = "video"

// Entry is one API response flattened to its string fields.
type Entry map[string]string

func newEntry(raw map[string]any) Entry {
	entry := make(Entry, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			entry[k] = s
		}
	}
	return entry
}

// Get returns the trimmed value of key and whether it was non-empty.
func (e Entry) Get(key string) (string, bool) {
	v := strings.TrimSpace(e[key])
	return v, v != ""
}

// Title returns the picture title.
func (e Entry) Title() string {
	v, _ := e.Get(FieldTitle)
	return v
}

// Date returns the raw date string from the response.
func (e Entry) Date() string {
	v, _ := e.Get(FieldDate)
	return v
}

// Day parses Date as a UTC calendar day.
func (e Entry) Day() (time.Time, bool) {
	t, err := time.ParseInLocation(DayLayout, e.Date(), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsVideo reports whether the entry is a video rather than an image.
func (e Entry) IsVideo() bool {
	v, _ := e.Get(FieldMediaType)
	return strings.EqualFold(v, MediaVideo)
}

// Clone returns an independent copy.
func (e Entry) Clone() Entry {
	return maps.Clone(e)
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders t as an API date.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
