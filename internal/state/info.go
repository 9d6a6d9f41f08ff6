package state

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/five82/apodbar/internal/apod"
)

// DefaultRandomWindow is how far back, in days, a random pick may reach.
const DefaultRandomWindow = 180

// Info is the picture the user currently asked for.
type Info struct {
	Date  time.Time // UTC calendar day, never after today
	Title string
	HD    bool
}

// New returns the startup state: today, a placeholder title and the
// persisted HD choice.
func New(now time.Time, placeholder string, hd bool) Info {
	return Info{Date: apod.Day(now), Title: placeholder, HD: hd}
}

// Advance moves the date by days. A move that would land after today's UTC
// day is rejected and the state is returned unchanged.
func (i Info) Advance(days int, now time.Time) Info {
	next := apod.Day(i.Date).AddDate(0, 0, days)
	if days > 0 && next.After(apod.Day(now)) {
		return i
	}
	i.Date = next
	return i
}

// Set replaces the date, clamping anything after today to today.
func (i Info) Set(day, now time.Time) Info {
	day = apod.Day(day)
	if today := apod.Day(now); day.After(today) {
		day = today
	}
	i.Date = day
	return i
}

// Today jumps to the current UTC day.
func (i Info) Today(now time.Time) Info {
	i.Date = apod.Day(now)
	return i
}

// ToggleHD flips the high-definition flag.
func (i Info) ToggleHD() Info {
	i.HD = !i.HD
	return i
}

// WithEntry applies a fetched entry. The entry's date wins over the requested
// one because the fetcher may have walked back; an unparsable date keeps the
// current value, and an entry without a title keeps the current title.
func (i Info) WithEntry(entry apod.Entry) Info {
	if day, ok := entry.Day(); ok {
		i.Date = day
	}
	title := entry.Title()
	if title == "" {
		return i
	}
	date := entry.Date()
	if date == "" {
		date = apod.FormatDay(i.Date)
	}
	i.Title = fmt.Sprintf("%s - %s", title, date)
	return i
}

// IsToday reports whether the cursor sits on the current UTC day.
func (i Info) IsToday(now time.Time) bool {
	return apod.Day(i.Date).Equal(apod.Day(now))
}

// RandomDay picks a day uniformly from [today-window, today).
func RandomDay(now time.Time, window int, rng *rand.Rand) time.Time {
	if window <= 0 {
		window = DefaultRandomWindow
	}
	start := apod.Day(now).AddDate(0, 0, -window)
	var offset int
	if rng != nil {
		offset = rng.IntN(window)
	} else {
		offset = rand.IntN(window)
	}
	return start.AddDate(0, 0, offset)
}
