package store

import (
	"errors"
	"testing"
	"time"

	"github.com/51348761z/ai-calendar/internal/domain"
)

func validInput(title string) domain.EventInput {
	return domain.EventInput{Title: title, Start: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)}
}

func TestStoreCreateAndGet(t *testing.T) {
	s := New()
	event, err := s.Create(validInput("A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected generated id")
	}
	got, err := s.Get(event.ID)
	if err != nil || got.Title != "A" {
		t.Fatalf("get: %+v err=%v", got, err)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreCreateValidation(t *testing.T) {
	s := New()
	if _, err := s.Create(domain.EventInput{Start: time.Now()}); err == nil {
		t.Fatal("expected empty title rejection")
	}
	if _, err := s.Create(domain.EventInput{Title: "x"}); err == nil {
		t.Fatal("expected missing start rejection")
	}
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	if _, err := s.Create(domain.EventInput{Title: "x", Start: start, End: &end}); err == nil {
		t.Fatal("expected end-before-start rejection")
	}
}

func TestStoreUpdateAndDelete(t *testing.T) {
	s := New()
	event, _ := s.Create(validInput("old"))

	updated, err := s.Update(event.ID, validInput("new"))
	if err != nil || updated.Title != "new" || updated.ID != event.ID {
		t.Fatalf("update: %+v err=%v", updated, err)
	}
	if _, err := s.Update("missing", validInput("x")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(event.ID, domain.EventInput{}); err == nil {
		t.Fatal("expected validation error")
	}

	if err := s.Delete(event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatal("expected empty list after delete")
	}
}

func TestStoreListOrder(t *testing.T) {
	s := New()
	for _, title := range []string{"a", "b", "c"} {
		if _, err := s.Create(validInput(title)); err != nil {
			t.Fatal(err)
		}
	}
	list := s.List()
	if len(list) != 3 || list[0].Title != "a" || list[1].Title != "b" || list[2].Title != "c" {
		t.Fatalf("unexpected order: %+v", list)
	}

	// Deleting from the middle keeps the remaining order.
	if err := s.Delete(list[1].ID); err != nil {
		t.Fatal(err)
	}
	list = s.List()
	if len(list) != 2 || list[0].Title != "a" || list[1].Title != "c" {
		t.Fatalf("unexpected order after delete: %+v", list)
	}
}

func TestStoreImportSkipsInvalid(t *testing.T) {
	s := New()
	imported := s.Import([]domain.EventInput{
		validInput("ok"),
		{Title: ""},
		validInput("also ok"),
	})
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported, got %d", len(imported))
	}
	if len(s.List()) != 2 {
		t.Fatalf("expected 2 stored, got %d", len(s.List()))
	}
}
