package domain

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// DefaultCoverType is assumed when the cover bytes do not sniff as an image.
const DefaultCoverType = "image/jpeg"

// CoverDataURI encodes an image as an inline data URI for an <img> src.
// Returns "" for an empty image.
func CoverDataURI(img []byte) string {
	if len(img) == 0 {
		return ""
	}

	mime := http.DetectContentType(img)
	if !strings.HasPrefix(mime, "image/") {
		mime = DefaultCoverType
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(img)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(img))
	return b.String()
}

// DatetimeLayout renders timestamps as day.month.year hours:minutes.
const DatetimeLayout = "02.01.2006 15:04"

// DateLayout renders dates as day.month.year.
const DateLayout = "02.01.2006"

// FormatDatetime formats t in loc for display. A zero time renders as "-".
func FormatDatetime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DatetimeLayout)
}

// FormatDate formats the date part of t. A zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// FormatPeriod renders a start-end date range, collapsing single-day events.
func FormatPeriod(start, end time.Time) string {
	if end.IsZero() || sameDay(start, end) {
		return FormatDate(start)
	}
	return FormatDate(start) + " – " + FormatDate(end)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
