package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/middleware"
)

// Handlers bundles the API handlers for router construction.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	List    *ListHandler
	Task    *TaskHandler
	Tag     *TagHandler
	Message *MessageHandler
}

// NewRouter constructs the HTTP handler serving the task tracker API.
//
// The /auth endpoints are public; everything under /data requires a valid
// "Bearer_<token>" Authorization header.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON requests
//  2. WithRequestLogging(logger)           — logs each request
//  3. TokenAuth(resolver)                  — /data only
func NewRouter(h Handlers, resolver *auth.CredentialResolver, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	r.Route("/data", func(r chi.Router) {
		r.Use(middleware.TokenAuth(resolver))

		r.Route("/project", func(r chi.Router) {
			r.Get("/all", h.Project.All)
			r.Get("/{id}", h.Project.Get)
			r.Post("/", h.Project.Create)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
			r.Post("/{id}/invite", h.Project.Invite)
			r.Put("/{id}/invite", h.Project.Answer)
		})

		r.Route("/list", func(r chi.Router) {
			r.Get("/in_project", h.List.InProject)
			r.Get("/{id}", h.List.Get)
			r.Post("/", h.List.Create)
			r.Put("/{id}", h.List.Update)
			r.Delete("/{id}", h.List.Delete)
		})

		r.Route("/task", func(r chi.Router) {
			r.Get("/in_list", h.Task.InList)
			r.Get("/{id}", h.Task.Get)
			r.Post("/", h.Task.Create)
			r.Put("/{id}", h.Task.Update)
			r.Delete("/{id}", h.Task.Delete)
		})

		r.Route("/tag", func(r chi.Router) {
			r.Get("/in_project", h.Tag.InProject)
			r.Get("/{id}", h.Tag.Get)
			r.Post("/", h.Tag.Create)
			r.Put("/{id}", h.Tag.Update)
			r.Delete("/{id}", h.Tag.Delete)
		})

		r.Route("/message", func(r chi.Router) {
			r.Get("/in_task", h.Message.InTask)
			r.Get("/{id}", h.Message.Get)
			r.Post("/", h.Message.Create)
			r.Put("/{id}", h.Message.Update)
			r.Delete("/{id}", h.Message.Delete)
		})
	})

	return r
}
