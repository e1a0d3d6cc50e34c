package ics

import (
	"strings"
	"time"

	"github.com/51348761z/ai-calendar/internal/domain"
)

const (
	// Filename and MIME type the export is delivered under.
	ExportFilename = "calendar.ics"
	ContentType    = "text/calendar;charset=utf-8"
)

const (
	dateTimeLayout = "20060102T150405Z"
	dateLayout     = "20060102"
)

// Encoder serializes events into an iCalendar document. Now supplies the
// DTSTAMP wall clock so output is deterministic under test.
//
// The output intentionally stays byte-compatible with exports produced by
// earlier versions of this app: LF line endings, no line folding, and
// SUMMARY/DESCRIPTION values emitted verbatim without RFC 5545 text
// escaping. Consumers that need strict compliance should re-export through
// a full iCalendar library.
type Encoder struct {
	Now func() time.Time
}

func NewEncoder() *Encoder {
	return &Encoder{Now: time.Now}
}

// Encode renders one VEVENT per input event, in input order.
func (e *Encoder) Encode(events []domain.Event) string {
	now := e.Now
	if now == nil {
		now = time.Now
	}
	stamp := now().UTC().Format(dateTimeLayout)

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//AI Calendar//EN\n")
	for _, event := range events {
		b.WriteString("BEGIN:VEVENT\n")
		b.WriteString("UID:" + event.ID + "\n")
		b.WriteString("DTSTAMP:" + stamp + "\n")
		if event.AllDay {
			b.WriteString("DTSTART;VALUE=DATE:" + event.Start.Format(dateLayout) + "\n")
			if event.End != nil {
				b.WriteString("DTEND;VALUE=DATE:" + event.End.Format(dateLayout) + "\n")
			}
		} else {
			b.WriteString("DTSTART:" + event.Start.UTC().Format(dateTimeLayout) + "\n")
			if event.End != nil {
				b.WriteString("DTEND:" + event.End.UTC().Format(dateTimeLayout) + "\n")
			}
		}
		b.WriteString("SUMMARY:" + event.Title + "\n")
		if event.Description != "" {
			b.WriteString("DESCRIPTION:" + event.Description + "\n")
		}
		b.WriteString("END:VEVENT\n")
	}
	b.WriteString("END:VCALENDAR")
	return b.String()
}
