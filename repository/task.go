package repository

import (
	"context"
	"time"

	"github.com/taskflow/backend/domain"
)

// TaskFilter narrows List results. Every set field becomes one conjunctive
// predicate; unset fields add no clause at all.
type TaskFilter struct {
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	AssignedTo *int64
}

// NewTask carries the caller-supplied fields of a task to create.
// The creator comes from the authenticated session, never from the payload.
type NewTask struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	AssignedTo  *int64
}

type TaskRepository interface {
	Create(ctx context.Context, fields NewTask, creatorID int64) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.TaskWithNames, error)
	// List returns matching tasks newest-first. No pagination.
	List(ctx context.Context, filter TaskFilter) ([]domain.TaskWithNames, error)
	// Update merges the patch into the stored row and returns the new row.
	// The merge runs transactionally; a row deleted mid-update is NotFound.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	// Delete removes the row and returns its prior state.
	Delete(ctx context.Context, id int64) (*domain.Task, error)
}
