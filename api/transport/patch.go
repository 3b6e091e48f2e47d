package transport

import (
	"encoding/json"

	"github.com/taskflow/backend/domain"
)

// DecodeTaskPatch parses a partial task update. Only the six mutable fields
// are recognized; anything else in the body is silently ignored. For the
// nullable fields an explicit JSON null clears the stored value, while an
// absent key leaves it untouched.
func DecodeTaskPatch(body []byte) (domain.TaskPatch, []domain.FieldError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.TaskPatch{}, nil, err
	}

	var (
		patch  domain.TaskPatch
		fields []domain.FieldError
	)
	invalid := func(field, message string) {
		fields = append(fields, domain.FieldError{Field: field, Message: message})
	}

	if v, ok := raw["title"]; ok {
		var title *string
		switch {
		case json.Unmarshal(v, &title) != nil:
			invalid("title", "title must be a string")
		case title == nil || *title == "":
			invalid("title", "title is required")
		case len(*title) > 255:
			invalid("title", "title is too long")
		default:
			patch.Title = title
		}
	}

	if v, ok := raw["status"]; ok {
		var status *domain.TaskStatus
		if json.Unmarshal(v, &status) != nil || status == nil || !status.Valid() {
			invalid("status", "status must be one of: pending, in-progress, completed")
		} else {
			patch.Status = status
		}
	}

	if v, ok := raw["priority"]; ok {
		var priority *domain.TaskPriority
		if json.Unmarshal(v, &priority) != nil || priority == nil || !priority.Valid() {
			invalid("priority", "priority must be one of: low, medium, high")
		} else {
			patch.Priority = priority
		}
	}

	if v, ok := raw["description"]; ok {
		var desc *string
		switch {
		case json.Unmarshal(v, &desc) != nil:
			invalid("description", "description must be a string")
		case desc == nil:
			patch.ClearDescription = true
		case len(*desc) > 2000:
			invalid("description", "description is too long")
		default:
			patch.Description = desc
		}
	}

	if v, ok := raw["due_date"]; ok {
		var due *string
		switch {
		case json.Unmarshal(v, &due) != nil:
			invalid("due_date", "due_date must be a date")
		case due == nil:
			patch.ClearDueDate = true
		default:
			parsed, ok := ParseDueDate(*due)
			if !ok {
				invalid("due_date", "due_date must be a date")
			} else {
				patch.DueDate = &parsed
			}
		}
	}

	if v, ok := raw["assigned_to"]; ok {
		var assignee *int64
		if json.Unmarshal(v, &assignee) != nil {
			invalid("assigned_to", "assigned_to must be a user id")
		} else if assignee == nil {
			patch.ClearAssignee = true
		} else {
			patch.AssignedTo = assignee
		}
	}

	return patch, fields, nil
}
