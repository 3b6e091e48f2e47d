package task

import (
	"context"
	"errors"
	"testing"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

type fakeTaskRepo struct {
	failWith error
	tasks    map[int64]*domain.Task
	nextID   int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskRepo) Create(_ context.Context, fields repository.NewTask, creatorID int64) (*domain.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	task := &domain.Task{
		ID:          f.nextID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DueDate:     fields.DueDate,
		CreatedBy:   creatorID,
		AssignedTo:  fields.AssignedTo,
	}
	f.nextID++
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.TaskWithNames, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &domain.TaskWithNames{Task: *task}, nil
}

func (f *fakeTaskRepo) List(context.Context, repository.TaskFilter) ([]domain.TaskWithNames, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(task)
	return task, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return task, nil
}

type recordingNotifier struct {
	changed []int64
	deleted []int64
}

func (r *recordingNotifier) TaskChanged(task *domain.Task) { r.changed = append(r.changed, task.ID) }
func (r *recordingNotifier) TaskDeleted(id int64)          { r.deleted = append(r.deleted, id) }

func TestCreateBroadcastsChange(t *testing.T) {
	repo := newFakeTaskRepo()
	rec := &recordingNotifier{}
	uc := New(repo, rec, nil)

	created, err := uc.CreateTask(context.Background(), repository.NewTask{
		Title:    "T1",
		Status:   domain.StatusPending,
		Priority: domain.PriorityLow,
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CreatedBy != 1 {
		t.Fatalf("created_by = %d", created.CreatedBy)
	}
	if len(rec.changed) != 1 || rec.changed[0] != created.ID {
		t.Fatalf("changed broadcasts = %v", rec.changed)
	}
}

func TestFailedMutationDoesNotBroadcast(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.failWith = errors.New("store down")
	rec := &recordingNotifier{}
	uc := New(repo, rec, nil)

	_, err := uc.CreateTask(context.Background(), repository.NewTask{Title: "T1"}, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(rec.changed) != 0 {
		t.Fatalf("broadcast after failed create: %v", rec.changed)
	}
}

func TestDeleteBroadcastsAndReturnsPriorRow(t *testing.T) {
	repo := newFakeTaskRepo()
	rec := &recordingNotifier{}
	uc := New(repo, rec, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, repository.NewTask{
		Title:    "T1",
		Status:   domain.StatusPending,
		Priority: domain.PriorityLow,
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := uc.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Title != "T1" {
		t.Fatalf("deleted title = %q", deleted.Title)
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != created.ID {
		t.Fatalf("deleted broadcasts = %v", rec.deleted)
	}

	// Second delete finds nothing and stays silent.
	if _, err := uc.DeleteTask(ctx, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if len(rec.deleted) != 1 {
		t.Fatalf("broadcast for missing task: %v", rec.deleted)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil, nil)

	created, err := uc.CreateTask(context.Background(), repository.NewTask{
		Title:    "T1",
		Status:   domain.StatusPending,
		Priority: domain.PriorityLow,
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.DeleteTask(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
