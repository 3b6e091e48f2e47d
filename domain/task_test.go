package domain

import (
	"testing"
	"time"
)

func sampleTask() Task {
	desc := "write the report"
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	assignee := int64(7)
	return Task{
		ID:          1,
		Title:       "T1",
		Description: &desc,
		Status:      StatusPending,
		Priority:    PriorityLow,
		DueDate:     &due,
		CreatedBy:   3,
		AssignedTo:  &assignee,
	}
}

func TestTaskPatchApply_PreservesAbsentFields(t *testing.T) {
	task := sampleTask()
	status := StatusCompleted

	TaskPatch{Status: &status}.Apply(&task)

	if task.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", task.Status)
	}
	if task.Title != "T1" {
		t.Errorf("title changed: %q", task.Title)
	}
	if task.Description == nil || *task.Description != "write the report" {
		t.Errorf("description changed: %v", task.Description)
	}
	if task.Priority != PriorityLow {
		t.Errorf("priority changed: %q", task.Priority)
	}
	if task.DueDate == nil {
		t.Error("due date cleared")
	}
	if task.AssignedTo == nil || *task.AssignedTo != 7 {
		t.Errorf("assignee changed: %v", task.AssignedTo)
	}
}

func TestTaskPatchApply_ExplicitNullClears(t *testing.T) {
	task := sampleTask()

	TaskPatch{
		ClearDescription: true,
		ClearDueDate:     true,
		ClearAssignee:    true,
	}.Apply(&task)

	if task.Description != nil {
		t.Errorf("description not cleared: %v", *task.Description)
	}
	if task.DueDate != nil {
		t.Errorf("due date not cleared: %v", *task.DueDate)
	}
	if task.AssignedTo != nil {
		t.Errorf("assignee not cleared: %v", *task.AssignedTo)
	}
	if task.Title != "T1" || task.Status != StatusPending {
		t.Error("unrelated fields changed")
	}
}

func TestTaskPatchApply_OverridesProvidedValues(t *testing.T) {
	task := sampleTask()
	title := "T2"
	priority := PriorityHigh
	assignee := int64(12)

	TaskPatch{Title: &title, Priority: &priority, AssignedTo: &assignee}.Apply(&task)

	if task.Title != "T2" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("priority = %q", task.Priority)
	}
	if task.AssignedTo == nil || *task.AssignedTo != 12 {
		t.Errorf("assignee = %v", task.AssignedTo)
	}
}

func TestTaskPatchEmpty(t *testing.T) {
	if !(TaskPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}

	title := "x"
	if (TaskPatch{Title: &title}).Empty() {
		t.Error("patch with title should not be empty")
	}
	if (TaskPatch{ClearAssignee: true}).Empty() {
		t.Error("patch clearing assignee should not be empty")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if TaskStatus("done").Valid() {
		t.Error("unknown status accepted")
	}

	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if TaskPriority("urgent").Valid() {
		t.Error("unknown priority accepted")
	}
}
