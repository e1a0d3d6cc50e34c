package ics

import (
	"strings"
	"testing"
	"time"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//AI Calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:1\r\n" +
	"DTSTAMP:20240601T120000Z\r\n" +
	"DTSTART:20240305T090000Z\r\n" +
	"DTEND:20240305T093000Z\r\n" +
	"SUMMARY:Team Sync\r\n" +
	"DESCRIPTION:weekly\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:2\r\n" +
	"DTSTAMP:20240601T120000Z\r\n" +
	"DTSTART;VALUE=DATE:20240310\r\n" +
	"DTEND;VALUE=DATE:20240311\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestDecode(t *testing.T) {
	inputs, err := Decode(strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(inputs))
	}

	timed := inputs[0]
	if timed.Title != "Team Sync" || timed.Description != "weekly" || timed.AllDay {
		t.Fatalf("unexpected timed event: %+v", timed)
	}
	wantStart := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	if !timed.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", timed.Start, wantStart)
	}
	if timed.End == nil || !timed.End.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", timed.End)
	}

	allDay := inputs[1]
	if !allDay.AllDay || allDay.Title != "Holiday" {
		t.Fatalf("unexpected all-day event: %+v", allDay)
	}
	if allDay.Start.Format("20060102") != "20240310" {
		t.Fatalf("unexpected all-day start: %v", allDay.Start)
	}
}

func TestDecodeSkipsUnusableEvents(t *testing.T) {
	payload := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//x//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:no-start\r\n" +
		"SUMMARY:Broken\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:ok\r\n" +
		"DTSTART:20240305T090000Z\r\n" +
		"SUMMARY:Kept\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	inputs, err := Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inputs) != 1 || inputs[0].Title != "Kept" {
		t.Fatalf("expected only the usable event, got %+v", inputs)
	}
}

func TestDecodeInvalidPayload(t *testing.T) {
	if _, err := Decode(strings.NewReader("not a calendar")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseDateTime(t *testing.T) {
	if _, err := parseDateTime("bogus"); err == nil {
		t.Fatal("expected invalid datetime error")
	}
	if _, err := parseDateTime(""); err == nil {
		t.Fatal("expected empty datetime error")
	}
	if got, err := parseDateTime("20240305"); err != nil || got.Day() != 5 {
		t.Fatalf("date-only parse failed: %v %v", got, err)
	}
	if _, err := parseDateTime("20240305T090000"); err != nil {
		t.Fatalf("floating datetime parse failed: %v", err)
	}
}
