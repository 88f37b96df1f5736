package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the storefront routes from a Store.
type Server struct {
	address   string
	store     *Store
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	limiter   *RateLimiter
	now       func() time.Time

	mu     sync.Mutex
	faults []fault
}

type Option func(*Server)

func WithTokenTTL(ttl time.Duration) Option { return func(s *Server) { s.tokenTTL = ttl } }

// WithAuthRateLimit limits the /api/auth routes per client address.
func WithAuthRateLimit(reqPerSec float64, burst int) Option {
	return func(s *Server) { s.limiter = NewRateLimiter(reqPerSec, burst) }
}

func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func NewServer(address string, l logging.Logger, store *Store, secretKey string, opts ...Option) *Server {
	s := &Server{
		address:   address,
		store:     store,
		logger:    l.With("module", "fakeapi"),
		jwtSecret: []byte(secretKey),
		tokenTTL:  time.Hour,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.injectFaults)
	r.Use(middleware.RequestID)
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.ByIP)
		}
		r.Post("/Login", s.login)
		r.Post("/forgot-password-movil", s.forgotPassword)
		r.Post("/reset-password", s.resetPassword)
		r.Post("/register", s.register)
		r.With(s.requireToken).Post("/change-password-movill", s.changePassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/marcas/getAll", s.brands)
		r.Get("/vehiculo/obtener", s.vehicles)
		r.Get("/vehiculo/marca/{marca}", s.vehiclesByBrand)
		r.Put("/vehiculo/actualizar/{id}", s.updateVehicle)
		r.Get("/servicios/obtener", s.services)
		r.Get("/cliente/email/{email}", s.customerByEmail)
		r.Post("/ventas/vender", s.recordSale)
		r.Get("/ventas/porCliente/{id}", s.salesByCustomer)
	})
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
