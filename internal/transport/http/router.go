package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-pokedex/internal/transport/http/handlers"
	"github.com/pribylovaa/go-pokedex/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	ServiceTimeout time.Duration // дедлайн CRUD-запросов
	SeedTimeout    time.Duration // дедлайн POST /seed
	BasePath       string        // например, "/api/v2"; если пустой - роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Recover внутри Access: восстановленная паника попадает в лог и метрики как 500.
	root.Use(
		middleware.RequestID(),
		middleware.Access(opts.Logger),
		middleware.Recover(),
	)

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts)
	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
// Сид идёт отдельной группой: его дедлайн длиннее общего.
func registerRoutes(r chi.Router, h *handlers.Handlers, opts Options) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.ServiceTimeout))

		r.Post("/pokemon", h.CreatePokemon)
		r.Get("/pokemon", h.ListPokemon)
		r.Get("/pokemon/{term}", h.GetPokemon)
		r.Patch("/pokemon/{term}", h.UpdatePokemon)
		r.Delete("/pokemon/{id}", h.DeletePokemon)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.SeedTimeout))

		r.Post("/seed", h.ExecuteSeed)
	})
}
