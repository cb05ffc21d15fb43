// Package server wires together the DAO, service, and API layers into a
// runnable HTTP server for the Coins compile-job service, grounded on the
// teacher's server package chi-router wiring.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dekarrin/coins/server/api"
	"github.com/dekarrin/coins/server/coinssvc"
	"github.com/dekarrin/coins/server/dao"
	"github.com/dekarrin/coins/server/middle"
	"github.com/go-chi/chi/v5"
)

// Server is a fully wired Coins compile-job HTTP server.
type Server struct {
	cfg Config
	db  dao.Store
	mux *chi.Mux
}

// New connects to the database described by cfg and builds a Server ready
// to ServeHTTP or Run. cfg should already have had FillDefaults called on it.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	srv := &Server{cfg: cfg, db: db}
	srv.mux = srv.routes()

	return srv, nil
}

func (s *Server) routes() *chi.Mux {
	a := api.API{
		Backend:     coinssvc.Service{DB: s.db},
		UnauthDelay: s.cfg.UnauthDelay(),
		Secret:      s.cfg.TokenSecret,
	}

	defaultUser := dao.User{Role: dao.Guest}
	requireAuth := middle.RequireAuth(s.db.Users(), s.cfg.TokenSecret, s.cfg.UnauthDelay(), defaultUser)
	optionalAuth := middle.OptionalAuth(s.db.Users(), s.cfg.TokenSecret, s.cfg.UnauthDelay(), defaultUser)

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(optionalAuth).Get("/info", a.HTTPGetInfo())

		r.Post("/login", a.HTTPCreateLogin())
		r.With(requireAuth).Delete("/login/{id}", a.HTTPDeleteLogin())
		r.With(requireAuth).Post("/token", a.HTTPCreateToken())

		r.With(requireAuth).Post("/users", a.HTTPCreateUser())

		r.With(optionalAuth).Post("/jobs", a.HTTPCreateJob())
		r.With(optionalAuth).Get("/jobs/{id}", a.HTTPGetJob())
		r.With(requireAuth).Get("/jobs", a.HTTPGetOwnJobs())
		r.With(requireAuth).Delete("/jobs/{id}", a.HTTPDeleteJob())
	})

	return r
}

// Store returns the DB connection backing this Server, so that callers can
// seed data (e.g. an initial admin user) through the same connection the
// server itself uses.
func (s *Server) Store() dao.Store {
	return s.db
}

// ServeHTTP lets Server be used directly as an http.Handler (e.g. in tests
// via httptest).
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// Run starts the HTTP server listening on addr and blocks until ctx is
// canceled or the server errors out.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.Close(httpSrv)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Close shuts down httpSrv and the server's DB connection.
func (s *Server) Close(httpSrv *http.Server) error {
	shutdownErr := httpSrv.Shutdown(context.Background())
	dbErr := s.db.Close()

	if shutdownErr != nil {
		return shutdownErr
	}
	return dbErr
}
