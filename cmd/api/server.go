package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

// listenAndServe binds the configured port on all interfaces and serves until
// SIGINT or SIGTERM.
func (app *application) listenAndServe() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return app.serve(ln, quit)
}

// serve answers requests on ln until a signal arrives on quit, then drains
// in-flight requests for at most the configured shutdown timeout.
func (app *application) serve(ln net.Listener, quit <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Handler:      app.routes(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  1 * time.Minute,
		ErrorLog:     log.New(app.logger, "", 0),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		s := <-quit
		app.logger.Info("shutting down server", map[string]string{
			"signal": s.String(),
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout)
		defer cancel()

		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	addr := ln.Addr().String()
	app.logger.Info("starting server", map[string]string{
		"addr":   addr,
		"env":    app.cfg.Env,
		"server": app.host.Name,
		"pid":    strconv.Itoa(app.host.PID()),
	})

	err := srv.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErr
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	app.logger.Info("stopped server", map[string]string{
		"addr": addr,
	})

	return nil
}
