// Package router assembles the HTTP route table and middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dkulagin/notable/internal/api/http/handler"
	"github.com/dkulagin/notable/internal/api/http/middleware"
	"github.com/dkulagin/notable/internal/logger"
	"github.com/dkulagin/notable/internal/model"
	"github.com/dkulagin/notable/internal/service"
)

// Router wires handlers, middleware and services into a chi mux.
type Router struct {
	authService     *service.Auth
	tokenService    *service.TokenService
	noteService     *service.Note
	categoryService *service.Category
	contextManager  model.ContextManager
	corsOrigin      string
	pageSize        int
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	noteService *service.Note,
	categoryService *service.Category,
	contextManager model.ContextManager,
	corsOrigin string,
	pageSize int,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		tokenService:    tokenService,
		noteService:     noteService,
		categoryService: categoryService,
		contextManager:  contextManager,
		corsOrigin:      corsOrigin,
		pageSize:        pageSize,
		logger:          logger,
	}
}

// Register builds the route table. Auth endpoints are public; everything
// else sits behind the bearer-token middleware. PUT on a note is
// deliberately absent: chi answers it with 405.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.tokenService, r.logger)
	noteHandler := handler.NewNote(r.noteService, r.contextManager, r.pageSize, r.logger)
	categoryHandler := handler.NewCategory(r.categoryService, r.logger)

	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{r.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Post("/token/refresh", authHandler.Refresh)

			auth.Group(func(protected chi.Router) {
				protected.Use(authenticate.Handle)
				protected.Post("/logout", authHandler.Logout)
			})
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)

			protected.Get("/categories", categoryHandler.List)

			protected.Route("/notes", func(notes chi.Router) {
				notes.Get("/", noteHandler.List)
				notes.Post("/", noteHandler.Create)
				notes.Route("/{id}", func(note chi.Router) {
					note.Get("/", noteHandler.Get)
					note.Patch("/", noteHandler.Update)
					note.Delete("/", noteHandler.Delete)
				})
			})
		})
	})

	return mux
}
