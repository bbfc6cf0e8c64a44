package xrserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlexZav1327/currency-converter/models"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Server struct {
	host    string
	port    int
	Server  *http.Server
	service RateService
	log     *logrus.Entry
}

type RateService interface {
	GetCurrentRate(from, to string) (models.ExchangeRate, error)
	GetRateTable(base string) (map[string]float64, error)
}

func New(host string, port int, service RateService, log *logrus.Logger) *Server {
	server := Server{
		host:    host,
		port:    port,
		log:     log.WithField("module", "xr_http"),
		service: service,
	}

	server.Server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           NewRouter(service, log),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &server
}

// NewRouter serves every provider shape the rates package understands:
// pair and latest under /v6, amount under /fastforex, lookup under /host.
func NewRouter(service RateService, log *logrus.Logger) http.Handler {
	h := NewHandler(service, log)
	r := chi.NewRouter()

	r.Route("/v6/{key}", func(r chi.Router) {
		r.Get("/pair/{from}/{to}/{amount}", h.pair)
		r.Get("/latest/{from}", h.latest)
	})
	r.Get("/fastforex/convert", h.fastforexConvert)
	r.Get("/host/convert", h.hostConvert)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.Server.Shutdown(shutdownCtx)
		if err != nil {
			s.log.Warningf("Server.Shutdown: %s", err)
		}
	}()

	s.log.Infof("Stub rate provider is running at port %d...", s.port)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	return nil
}
