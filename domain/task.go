package domain

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the persisted task row. CreatedBy is set from the authenticated
// session at creation time and is immutable afterwards.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedBy   int64        `json:"created_by"`
	AssignedTo  *int64       `json:"assigned_to"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskWithNames joins a task with the display names of its creator and
// assignee. AssigneeName is nil for unassigned tasks.
type TaskWithNames struct {
	Task
	CreatorName  string  `json:"creator_name"`
	AssigneeName *string `json:"assignee_name"`
}

// TaskPatch carries a partial update of the six mutable task fields.
// A nil pointer means the field was not provided and keeps its stored value.
// For the nullable columns an explicit JSON null arrives as a set Clear flag,
// which overrides the stored value with NULL.
type TaskPatch struct {
	Title    *string
	Status   *TaskStatus
	Priority *TaskPriority

	Description      *string
	ClearDescription bool
	DueDate          *time.Time
	ClearDueDate     bool
	AssignedTo       *int64
	ClearAssignee    bool
}

// Empty reports whether the patch touches no recognized field.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Status == nil && p.Priority == nil &&
		p.Description == nil && !p.ClearDescription &&
		p.DueDate == nil && !p.ClearDueDate &&
		p.AssignedTo == nil && !p.ClearAssignee
}

// Apply merges the patch into t. Provided fields (including explicit nulls)
// override the current values; absent fields are left untouched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDescription:
		t.Description = nil
	case p.Description != nil:
		t.Description = p.Description
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		t.DueDate = p.DueDate
	}
	switch {
	case p.ClearAssignee:
		t.AssignedTo = nil
	case p.AssignedTo != nil:
		t.AssignedTo = p.AssignedTo
	}
}
