package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
	"github.com/taskflow/backend/usecase"
)

// UseCase wires task persistence with the best-effort change feed.
type UseCase struct {
	tasks    repository.TaskRepository
	notifier usecase.ChangeNotifier
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, notifier usecase.ChangeNotifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskWithNames, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.TaskWithNames, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, fields repository.NewTask, creatorID int64) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, fields, creatorID)
	if err != nil {
		return nil, err
	}
	uc.broadcast(created)
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.broadcast(updated)
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	deleted, err := uc.tasks.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.TaskDeleted(id)
	}
	return deleted, nil
}

// broadcast feeds the change notifier after a successful mutation.
// The notifier is fire-and-forget; the mutation already committed.
func (uc *UseCase) broadcast(task *domain.Task) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.TaskChanged(task)
}
