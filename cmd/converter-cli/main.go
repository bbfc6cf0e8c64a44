package main

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexZav1327/currency-converter/internal/config"
	"github.com/AlexZav1327/currency-converter/internal/converter"
	"github.com/AlexZav1327/currency-converter/internal/format"
	"github.com/AlexZav1327/currency-converter/internal/rates"
	"github.com/AlexZav1327/currency-converter/internal/session"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	cfg, err := config.New()
	if err != nil {
		logger.Panicf("config.New: %s", err)
	}

	provider, err := rates.New(rates.Settings{
		Kind:    cfg.Provider.Kind,
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	}, logger)
	if err != nil {
		logger.Panicf("rates.New: %s", err)
	}

	sess := session.New(converter.New(provider, logger), &printer{out: os.Stdout},
		session.WithDebounce(cfg.Session.Debounce),
		session.WithLanguage(format.ParseLocale(cfg.Session.Locale)),
		session.WithLogger(logger),
	)
	defer sess.Close()

	sess.Start()

	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}

			err = apply(sess, line)
			if errors.Is(err, errQuit) {
				return
			}

			if err != nil {
				_, _ = os.Stdout.WriteString(err.Error() + "\n")
			}
		}
	}
}
