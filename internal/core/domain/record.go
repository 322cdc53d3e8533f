package domain

import "time"

// Record is a number of hours a user logged, optionally against a project.
// UserID is the owner and never changes after creation.
type Record struct {
	ID          int
	UserID      int
	ProjectID   *int
	Hours       int
	Description string
	CreatedAt   time.Time
}

// DateRange is an inclusive [From, To] window on Record.CreatedAt.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
