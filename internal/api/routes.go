package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmaus/userhub-api/internal/api/middleware"
	"github.com/dmaus/userhub-api/internal/dispatch"
	"github.com/dmaus/userhub-api/internal/store"
)

// NewRouter assembles the route table: every user route binds an HTTP
// method and path to a service call wrapped by the dispatch layer.
func NewRouter(
	sessions store.SessionFactory,
	userHandler *UserHandler,
	log *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Trace first so every later log line carries the trace ID; Recoverer
	// turns programmer-error panics from the dispatch layer into plain 500s.
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Post("/v1/user/create", dispatch.Wrap(sessions, dispatch.Options{
		Body: func() any { return &CreateUserRequest{} },
	}, userHandler.Create))

	r.Get("/v1/user/get", dispatch.Wrap(sessions, dispatch.Options{
		Query: func() any { return &GetUserQuery{} },
	}, userHandler.Get))

	r.Get("/v1/user/get-all", dispatch.Wrap(sessions, dispatch.Options{}, userHandler.GetAll))

	r.Get("/healthz", dispatch.Wrap(nil, dispatch.Options{}, healthz))

	return r
}

// healthz reports process liveness; it uses the raw passthrough variant
// because it has no schema to serialize.
func healthz(_ *http.Request, _ *dispatch.Context) (dispatch.Response, error) {
	return dispatch.Raw(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}), nil
}
