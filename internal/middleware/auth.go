package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/session"
)

// SessionKey is the request-ctx user value under which verified claims are
// stored for downstream handlers.
const SessionKey = "session"

// SessionAuth guards a route behind a valid session cookie. Requests without
// one are rejected with 401 before any handler logic runs.
func SessionAuth(sessions *session.Manager, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			data := sessions.Read(ctx)
			if data == nil {
				ctx.Response.Header.SetContentType("application/json")
				ctx.SetStatusCode(http.StatusUnauthorized)
				body, _ := json.Marshal(map[string]string{"error": domain.ErrNotAuthenticated.Message})
				ctx.SetBody(body)
				return
			}

			ctx.SetUserValue(SessionKey, data)
			next(ctx)
		}
	}
}

// SessionFromCtx returns the claims stashed by SessionAuth, or nil on
// unguarded routes.
func SessionFromCtx(ctx *fasthttp.RequestCtx) *domain.SessionData {
	data, _ := ctx.UserValue(SessionKey).(*domain.SessionData)
	return data
}
