package converterserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Server struct {
	host    string
	port    int
	Server  *http.Server
	log     *logrus.Entry
	handler *Handler
}

func New(host string, port int, workflow Workflow, log *logrus.Logger, tag language.Tag) *Server {
	h := NewHandler(workflow, log, tag)

	server := Server{
		host:    host,
		port:    port,
		log:     log.WithField("module", "http"),
		handler: h,
	}

	server.Server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           NewRouter(h, log),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &server
}

func NewRouter(h *Handler, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Group(func(r chi.Router) {
		r.Use(h.metric)
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
			r.Get("/currencies", h.currencies)
			r.Get("/convert", h.convert)
			r.Get("/swap", h.swap)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	defer s.log.Info("Server is stopped")

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.Server.Shutdown(shutdownCtx)
		if err != nil {
			s.log.Warningf("Server.Shutdown: %s", err)
		}
	}()

	s.log.Infof("Server is running at port %d...", s.port)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	return nil
}
