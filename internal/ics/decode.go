package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/51348761z/ai-calendar/internal/domain"
)

// Decode parses an iCalendar payload into event inputs. VEVENTs without a
// usable SUMMARY or DTSTART are skipped rather than failing the whole
// import.
func Decode(r io.Reader) ([]domain.EventInput, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var inputs []domain.EventInput
	for _, ve := range cal.Events() {
		in, ok := decodeVEvent(ve)
		if !ok {
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func decodeVEvent(ve *ical.VEvent) (domain.EventInput, bool) {
	var in domain.EventInput

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		in.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		in.Description = p.Value
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if in.Title == "" || startProp == nil {
		return domain.EventInput{}, false
	}

	in.AllDay = isDateOnly(startProp)
	start, err := parseDateTime(startProp.Value)
	if err != nil {
		return domain.EventInput{}, false
	}
	in.Start = start

	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		if end, err := parseDateTime(endProp.Value); err == nil {
			in.End = &end
		}
	}
	return in, true
}

// isDateOnly reports whether DTSTART carries VALUE=DATE or a bare date
// value, which marks the event as all-day.
func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func parseDateTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	if len(v) == len(dateLayout) {
		return time.Parse(dateLayout, v)
	}
	for _, layout := range []string{dateTimeLayout, "20060102T150405"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ical datetime: %s", v)
}
