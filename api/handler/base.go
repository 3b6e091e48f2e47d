package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, details []domain.FieldError) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorBody{Error: "Invalid input", Details: details})
}

// respondError maps domain error codes onto statuses. Anything unclassified
// is an internal failure: the client gets a generic body, the log gets the
// full error. Duplicate-email conflicts surface as 400 like any bad input.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeUnauthorized:
			h.respondJSON(ctx, http.StatusUnauthorized, transport.ErrorBody{Error: dErr.Message})
			return
		case domain.ErrCodeInvalid:
			h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorBody{Error: dErr.Message, Details: dErr.Fields})
			return
		case domain.ErrCodeConflict:
			h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorBody{Error: dErr.Message})
			return
		case domain.ErrCodeNotFound:
			h.respondJSON(ctx, http.StatusNotFound, transport.ErrorBody{Error: dErr.Message})
			return
		}
	}

	h.logger.Error("request failed",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Error(err),
	)
	h.respondJSON(ctx, http.StatusInternalServerError, transport.ErrorBody{Error: "Internal server error"})
}
