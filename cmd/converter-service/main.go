package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AlexZav1327/currency-converter/internal/config"
	"github.com/AlexZav1327/currency-converter/internal/converter"
	converterserver "github.com/AlexZav1327/currency-converter/internal/converter-server"
	"github.com/AlexZav1327/currency-converter/internal/format"
	"github.com/AlexZav1327/currency-converter/internal/rates"
	xrserver "github.com/AlexZav1327/currency-converter/internal/xr-server"
	xrservice "github.com/AlexZav1327/currency-converter/internal/xr-service"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger := logrus.StandardLogger()

	cfg, err := config.New()
	if err != nil {
		logger.Panicf("config.New: %s", err)
	}

	baseURL := cfg.Provider.BaseURL
	if cfg.Stub.Embedded {
		baseURL = cfg.StubURL()
	}

	provider, err := rates.New(rates.Settings{
		Kind:    cfg.Provider.Kind,
		BaseURL: baseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	}, logger)
	if err != nil {
		logger.Panicf("rates.New: %s", err)
	}

	workflow := converter.New(provider, logger)
	server := converterserver.New(cfg.HTTPServer.Host, cfg.HTTPServer.Port, workflow, logger,
		format.ParseLocale(cfg.Session.Locale))

	group, ctx := errgroup.WithContext(ctx)

	if cfg.Stub.Embedded {
		stub := xrserver.New(cfg.Stub.Host, cfg.Stub.Port, xrservice.New(logger), logger)

		group.Go(func() error {
			return stub.Run(ctx)
		})
	}

	group.Go(func() error {
		return server.Run(ctx)
	})

	err = group.Wait()
	if err != nil {
		logger.Panicf("group.Wait: %s", err)
	}
}
