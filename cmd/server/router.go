package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskmanager/api/internal/api"
	apiMiddleware "github.com/taskmanager/api/internal/api/middleware"
	"github.com/taskmanager/api/internal/web"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs for improved error handling

	// Create handlers using the application's services
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	webHandler := web.NewHandler(app.logger)

	// Register API routes. Named segments such as /completed take
	// precedence over the /{id} parameter in chi's routing tree.
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/completed", taskHandler.ListCompletedTasks)
		r.Get("/incomplete", taskHandler.ListIncompleteTasks)
		r.Get("/search", taskHandler.SearchTasks)
		r.Get("/statistics", taskHandler.GetStatistics)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Put("/{id}/complete", taskHandler.CompleteTask)
		r.Put("/{id}/incomplete", taskHandler.ReopenTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Browser frontend
	r.Get("/", webHandler.Index)
	r.Get("/app.js", webHandler.AppJS)
	r.Get("/styles.css", webHandler.StylesCSS)

	return r
}
