package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskflow/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	User   *apiHandler.UserHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, sessionAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth/register", handlers.Auth.Register)
	r.POST("/auth/login", handlers.Auth.Login)
	r.GET("/auth/me", sessionAuth(handlers.Auth.Me))
	r.POST("/auth/logout", sessionAuth(handlers.Auth.Logout))

	// Protected routes
	r.GET("/tasks", sessionAuth(handlers.Task.List))
	r.POST("/tasks", sessionAuth(handlers.Task.Create))
	r.GET("/tasks/{id}", sessionAuth(handlers.Task.Get))
	r.PATCH("/tasks/{id}", sessionAuth(handlers.Task.Update))
	r.DELETE("/tasks/{id}", sessionAuth(handlers.Task.Delete))

	r.GET("/users", sessionAuth(handlers.User.List))

	return r
}
