package transport

import "github.com/taskflow/backend/domain"

// SessionUser is the identity payload returned by the auth endpoints.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewSessionUser(u *domain.User) SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

type UserEnvelope struct {
	User SessionUser `json:"user"`
}

type SessionEnvelope struct {
	User *domain.SessionData `json:"user"`
}

type TaskEnvelope struct {
	Task *domain.Task `json:"task"`
}

type TaskDetailEnvelope struct {
	Task *domain.TaskWithNames `json:"task"`
}

type TasksEnvelope struct {
	Tasks []domain.TaskWithNames `json:"tasks"`
}

type UsersEnvelope struct {
	Users []domain.PublicUser `json:"users"`
}

type SuccessEnvelope struct {
	Success bool `json:"success"`
}

// ErrorBody is the error shape shared by every endpoint. Details carries
// per-field validation messages and is omitted otherwise.
type ErrorBody struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}
