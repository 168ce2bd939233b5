package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	xlog "cartographs/internal/log"
)

func main() {
	dir := flag.String("dir", ".", "directory holding cb_*.zip archives")
	listen := flag.String("listen", ":8080", "listen address")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	base, err := xlog.New(xlog.Config{Level: *level, Format: "json"})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	logger := xlog.WithComponent(base, "mirror")

	m, err := newMirror(*dir, logger)
	if err != nil {
		logger.Fatal().Err(err).Str(xlog.FieldPath, *dir).Msg("index archives")
	}
	logger.Info().Int("archives", len(m.paths())).Str("listen", *listen).Msg("boundary mirror listening")

	srv := &http.Server{
		Addr:              *listen,
		Handler:           m.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
