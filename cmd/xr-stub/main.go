package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/AlexZav1327/currency-converter/internal/config"
	xrserver "github.com/AlexZav1327/currency-converter/internal/xr-server"
	xrservice "github.com/AlexZav1327/currency-converter/internal/xr-service"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger := logrus.StandardLogger()

	cfg, err := config.New()
	if err != nil {
		logger.Panicf("config.New: %s", err)
	}

	rateService := xrservice.New(logger)
	server := xrserver.New("", cfg.Stub.Port, rateService, logger)

	err = server.Run(ctx)
	if err != nil {
		logger.Panicf("server.Run: %s", err)
	}
}
