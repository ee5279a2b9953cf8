package models

import (
	"fmt"
	"regexp"
)

// ValidationError reports a schema violation in an inbound payload. Handlers
// map it to a 400 response; it never reaches the storage adapter.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

var emailPattern = regexp.MustCompile(`^(?i)[a-z0-9._%+\-]+@(?:[a-z0-9\-]+\.)+[a-z]{2,}$`)

// ValidateEmail reports whether the input is a plausible email address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks a registration or login payload. Login callers pass
// requireEmail=false since the login form carries no email.
func (u User) Validate(requireEmail bool) error {
	if u.Username == "" {
		return invalid("username is required")
	}
	if requireEmail && !ValidateEmail(u.Email) {
		return invalid("invalid email format")
	}
	if u.Password == "" {
		return invalid("password is required")
	}
	return nil
}

func (h Habit) Validate() error {
	if h.Username == "" {
		return invalid("username is required")
	}
	if len(h.Title) < 1 {
		return invalid("title is required")
	}
	return nil
}

func (a Affirmation) Validate() error {
	if len(a.Text) < 1 {
		return invalid("text is required")
	}
	return nil
}

func (w WaterIntakeSetting) Validate() error {
	if w.Username == "" {
		return invalid("username is required")
	}
	if len(w.BottleName) < 1 {
		return invalid("bottleName is required")
	}
	if w.BottleOz < 1 {
		return invalid("bottleOz must be at least 1")
	}
	if w.DailyGoal < 1 {
		return invalid("dailyGoal must be at least 1")
	}
	if w.CurrentOz < 0 {
		return invalid("currentOz cannot be negative")
	}
	return nil
}

func (e Exercise) Validate() error {
	if e.Username == "" {
		return invalid("username is required")
	}
	if len(e.Name) < 1 {
		return invalid("name is required")
	}
	if e.Category != CategoryStrength && e.Category != CategoryCardio {
		return invalid("category must be %q or %q", CategoryStrength, CategoryCardio)
	}
	return nil
}

func (x Exam) Validate() error {
	if x.Username == "" {
		return invalid("username is required")
	}
	if x.Course == "" {
		return invalid("course is required")
	}
	if x.Date == "" {
		return invalid("date is required")
	}
	if x.PlannedHours < 0 {
		return invalid("planned_hours cannot be negative")
	}
	return nil
}

func (a Assignment) Validate() error {
	if a.Username == "" {
		return invalid("username is required")
	}
	if len(a.Title) < 1 {
		return invalid("title is required")
	}
	if a.Course == "" {
		return invalid("course is required")
	}
	if a.DueDate == "" {
		return invalid("dueDate is required")
	}
	return nil
}

func (c Course) Validate() error {
	if c.Code == "" {
		return invalid("code is required")
	}
	if len(c.Name) < 1 {
		return invalid("name is required")
	}
	if c.Professor == "" {
		return invalid("professor is required")
	}
	return nil
}
