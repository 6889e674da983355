package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/sanctum-app/sanctum/config"
	"github.com/sanctum-app/sanctum/pkg/otel"
	"github.com/sanctum-app/sanctum/server"
)

func main() {
	portFlag := flag.Int("port", 8080, "server port")
	addressFlag := flag.String("address", "", "server address")
	configFlag := flag.String("config", "config.yaml", "configuration path")

	flag.Parse()

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		log.WithError(err).Fatal("failed to parse configuration")
	}

	cfg.Address = fmt.Sprintf("%s:%d", *addressFlag, *portFlag)

	s, err := server.New(cfg)

	if err != nil {
		log.WithError(err).Fatal("failed to create server")
	}

	if err := otel.Setup("sanctum", "0.1.0"); err != nil {
		log.WithError(err).Warn("failed to set up telemetry")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("address", cfg.Address).WithField("data_dir", cfg.DataDir).Info("vault listening")

		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	stop()

	log.Info("shutting down")

	if err := s.Shutdown(context.Background()); err != nil {
		log.WithError(err).Warn("shutdown failed")
	}
}
