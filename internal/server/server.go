// Package server exposes the engine over HTTP and websockets.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

// Application routes analysis requests. Each request searches its own copy
// of the position with an engine taken from a pool, so requests never
// share a transposition table while running.
type Application struct {
	cfg      *config.Config
	router   *mux.Router
	engines  sync.Pool
	upgrader websocket.Upgrader
}

// NewApplication builds the router and its middleware.
func NewApplication(cfg *config.Config) *Application {
	app := &Application{
		cfg:    cfg,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	app.engines.New = func() any { return search.NewEngine(cfg) }

	app.router.NotFoundHandler = app.logged(http.HandlerFunc(notFoundHandler))
	app.router.Use(app.logged)

	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", app.healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/moves", app.movesHandler).Methods(http.MethodGet)
	api.HandleFunc("/search", app.searchHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/ws", app.wsHandler)
	return app
}

func (app *Application) logged(next http.Handler) http.Handler {
	return handlers.LoggingHandler(app.cfg.LogFile, next)
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

// Handler returns the application wrapped in panic recovery.
func (app *Application) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(app.cfg.Verbosity > 1))(app)
}

// ListenAndServe serves on cfg.Server.Addr until ctx is done.
func (app *Application) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         app.cfg.Server.Addr,
		Handler:      app.Handler(),
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	app.cfg.Logf(1, "server: listening on %s\n", srv.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (app *Application) acquire() *search.Engine {
	e := app.engines.Get().(*search.Engine)
	e.NewGame()
	return e
}

func (app *Application) release(e *search.Engine) {
	e.SetInfoFunc(nil)
	app.engines.Put(e)
}

// limits clamps a client request to the server maximums.
func (app *Application) limits(req SearchRequest) search.Limits {
	sc := app.cfg.Server
	limits := search.Limits{
		Depth:    req.Depth,
		MoveTime: time.Duration(req.MoveTimeMs) * time.Millisecond,
	}
	if limits.Depth <= 0 {
		limits.Depth = app.cfg.Search.DefaultDepth
	}
	limits.Depth = min(limits.Depth, sc.MaxDepth)
	if limits.MoveTime <= 0 || limits.MoveTime > sc.MaxMoveTime {
		limits.MoveTime = sc.MaxMoveTime
	}
	return limits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
}
