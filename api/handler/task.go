package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/middleware"
	"github.com/taskflow/backend/internal/validate"
	"github.com/taskflow/backend/pkg/httpcontext"
	"github.com/taskflow/backend/repository"
	taskUC "github.com/taskflow/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc        *taskUC.UseCase
	validator *validate.Validator
}

func NewTaskHandler(uc *taskUC.UseCase, validator *validate.Validator, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		validator:   validator,
	}
}

// List returns tasks newest-first, optionally narrowed by status, priority
// and assignee. Absent query params contribute no filter at all.
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	var filter repository.TaskFilter

	if v := string(ctx.QueryArgs().Peek("status")); v != "" {
		status := domain.TaskStatus(v)
		filter.Status = &status
	}
	if v := string(ctx.QueryArgs().Peek("priority")); v != "" {
		priority := domain.TaskPriority(v)
		filter.Priority = &priority
	}
	if v := string(ctx.QueryArgs().Peek("assignedTo")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssignedTo = &id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.TaskWithNames{}
	}
	h.respondJSON(ctx, http.StatusOK, transport.TasksEnvelope{Tasks: tasks})
}

func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		h.respondError(ctx, domain.ErrNotAuthenticated)
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, nil)
		return
	}
	if details := h.validator.Check(req); details != nil {
		h.respondInvalid(ctx, details)
		return
	}

	fields := repository.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, ok := transport.ParseDueDate(*req.DueDate)
		if !ok {
			h.respondInvalid(ctx, []domain.FieldError{{Field: "due_date", Message: "due_date must be a date"}})
			return
		}
		fields.DueDate = &due
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, fields, sess.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.TaskEnvelope{Task: created})
}

func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.TaskDetailEnvelope{Task: task})
}

// Update merges a partial body into the stored row and returns the full
// merged task. Unknown body fields are ignored; an effectively empty patch
// is rejected before touching the store.
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	patch, details, err := transport.DecodeTaskPatch(ctx.PostBody())
	if err != nil {
		h.respondInvalid(ctx, nil)
		return
	}
	if details != nil {
		h.respondInvalid(ctx, details)
		return
	}
	if patch.Empty() {
		h.respondError(ctx, domain.ErrNoUpdatableFields)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.TaskEnvelope{Task: updated})
}

func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessEnvelope{Success: true})
}

// taskID reads the {id} path segment. Non-numeric ids can never name an
// existing task, so they respond 404 directly.
func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return 0, false
	}
	return id, true
}
