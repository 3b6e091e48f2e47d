package transport

import (
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type TaskCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      string  `json:"status" validate:"required,oneof=pending in-progress completed"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *int64  `json:"assigned_to"`
}

// ParseDueDate accepts a plain date or an RFC 3339 timestamp.
func ParseDueDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
