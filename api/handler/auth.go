package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/middleware"
	"github.com/taskflow/backend/internal/session"
	"github.com/taskflow/backend/internal/validate"
	"github.com/taskflow/backend/pkg/httpcontext"
	authUC "github.com/taskflow/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc        *authUC.UseCase
	sessions  *session.Manager
	validator *validate.Validator
}

func NewAuthHandler(uc *authUC.UseCase, sessions *session.Manager, validator *validate.Validator, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		sessions:    sessions,
		validator:   validator,
	}
}

// Register creates an account and logs the new user straight in.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, nil)
		return
	}
	if details := h.validator.Check(req); details != nil {
		h.respondInvalid(ctx, details)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.issueSession(ctx, user); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.UserEnvelope{User: transport.NewSessionUser(user)})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, nil)
		return
	}
	if details := h.validator.Check(req); details != nil {
		h.respondInvalid(ctx, details)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Authenticate(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.issueSession(ctx, user); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.UserEnvelope{User: transport.NewSessionUser(user)})
}

// Me echoes the verified session claims.
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	data := middleware.SessionFromCtx(ctx)
	if data == nil {
		h.respondError(ctx, domain.ErrNotAuthenticated)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SessionEnvelope{User: data})
}

// Logout clears the session cookie. Idempotent: logging out twice is fine.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.sessions.Revoke(ctx)
	h.respondJSON(ctx, http.StatusOK, transport.SuccessEnvelope{Success: true})
}

func (h *AuthHandler) issueSession(ctx *fasthttp.RequestCtx, user *domain.User) error {
	return h.sessions.Issue(ctx, domain.SessionData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}
