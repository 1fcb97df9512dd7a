package model

import (
	"strings"
	"time"
)

const (
	PlaceholderTitle = "New task"
	// LocalUserID tags tasks created on this device.
	LocalUserID int64 = 1
	DateLayout        = "02/01/06"
)

type Task struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	Completed   bool
	UserID      int64
}

func NewTask(title, description string, now time.Time) Task {
	return Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   now.UTC(),
		UserID:      LocalUserID,
	}
}

// DisplayTitle substitutes the placeholder for an absent title. The placeholder
// is a rendering concern and must never be written back to the store.
func (t Task) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return PlaceholderTitle
	}
	return t.Title
}

func (t Task) IsEmpty() bool {
	return strings.TrimSpace(t.Title) == "" && strings.TrimSpace(t.Description) == ""
}

func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

func (t Task) ShareText() string {
	return t.DisplayTitle() + "\n" + t.Description
}

func (t Task) FormatDate() string {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return t.CreatedAt.Local().Format(DateLayout)
}

// Matches reports whether query is a folded substring of the title or the
// description. An empty query matches everything.
func (t Task) Matches(query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(t.Title), q) || strings.Contains(Fold(t.Description), q)
}
