package domain

import (
	"errors"
	"time"
)

// Event is a single calendar entry. End is nil for open-ended events; when
// AllDay is set, Start and End carry calendar dates and their time-of-day is
// ignored on export.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	AllDay      bool       `json:"all_day"`
}

// EventInput is the create/update payload for an event.
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	AllDay      bool       `json:"all_day"`
}

func (in EventInput) Validate() error {
	if in.Title == "" {
		return errors.New("title is required")
	}
	if in.Start.IsZero() {
		return errors.New("start is required")
	}
	if in.End != nil && in.End.Before(in.Start) {
		return errors.New("end must not be before start")
	}
	return nil
}
