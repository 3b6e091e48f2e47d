package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

const taskColumns = `id, title, description, status, priority, due_date, created_by, assigned_to, created_at, updated_at`

const taskWithNamesSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
	       t.created_by, t.assigned_to, t.created_at, t.updated_at,
	       u1.name AS creator_name, u2.name AS assignee_name
	FROM tasks t
	LEFT JOIN users u1 ON t.created_by = u1.id
	LEFT JOIN users u2 ON t.assigned_to = u2.id`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, fields repository.NewTask, creatorID int64) (*domain.Task, error) {
	const query = `
	INSERT INTO tasks (title, description, status, priority, due_date, created_by, assigned_to)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query,
		fields.Title,
		fields.Description,
		fields.Status,
		fields.Priority,
		fields.DueDate,
		creatorID,
		fields.AssignedTo,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewValidationError([]domain.FieldError{
				{Field: "assigned_to", Message: "Assignee does not exist"},
			})
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.TaskWithNames, error) {
	query := taskWithNamesSelect + ` WHERE t.id = $1`
	return scanTaskWithNames(r.pool.QueryRow(ctx, query, id))
}

// List builds a single conjunctive query: each present filter appends one
// predicate, so the clause set grows linearly with the number of filters.
func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskWithNames, error) {
	query := taskWithNamesSelect

	var (
		clauses []string
		args    []interface{}
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority = $%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("t.assigned_to = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.TaskWithNames
	for rows.Next() {
		task, err := scanTaskWithNames(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// Update runs fetch-merge-write inside one transaction. The row lock keeps
// concurrent patches to the same task from losing writes, and a row deleted
// between fetch and write surfaces as NotFound instead of being resurrected.
func (r *taskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return nil, domain.ErrNoUpdatableFields
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanTask(tx.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	patch.Apply(current)

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		status = $4,
		priority = $5,
		due_date = $6,
		assigned_to = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + taskColumns

	updated, err := scanTask(tx.QueryRow(ctx, query,
		current.ID,
		current.Title,
		current.Description,
		current.Status,
		current.Priority,
		current.DueDate,
		current.AssignedTo,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewValidationError([]domain.FieldError{
				{Field: "assigned_to", Message: "Assignee does not exist"},
			})
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func scanTaskWithNames(row pgx.Row) (*domain.TaskWithNames, error) {
	var task domain.TaskWithNames
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CreatorName,
		&task.AssigneeName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
