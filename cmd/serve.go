package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/snapup/internal/server"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
	"github.com/desertthunder/snapup/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the development backend and, unless --no-web is given, the form pages.
//
// When no API host is configured the form pages submit to the backend started here.
// Both servers stop on SIGINT/SIGTERM; if either fails the other is shut down.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}
	webPort := r.config.Web.Port
	if port := cmd.Int("web-port"); port > 0 {
		webPort = port
	}

	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	backend, err := server.NewBackend(server.BackendOpts{
		DB:             db,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MinImageSide:   cfg.MinImageSide,
		Logger:         r.logger,
	})
	if err != nil {
		return err
	}

	api := server.NewBasicRouter()
	api.Use(
		server.Recoverer(r.logger),
		server.RequestLogger(shared.WithLogger(r.logger, "server", "backend")),
		server.CORS(cfg.AllowedOrigins),
	)
	backend.Register(api)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{Addr: cfg.Addr(), Handler: api}}

	if !cmd.Bool("no-web") {
		formBackend := r.backend
		baseURL := r.api.BaseURL()
		if r.config.API.Host == "" {
			baseURL = "http://" + cfg.Addr()
			formBackend = services.NewClient(baseURL, r.httpClient)
		}

		app, err := web.New(web.Opts{
			Backend:        formBackend,
			BaseURL:        baseURL,
			Logger:         r.logger,
			Timeout:        r.config.Timeout(),
			MaxUploadBytes: cfg.MaxUploadBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to load form pages: %w", err)
		}

		pages := server.NewBasicRouter()
		pages.Use(
			server.Recoverer(r.logger),
			server.RequestLogger(shared.WithLogger(r.logger, "server", "web")),
		)
		app.Register(pages)

		servers = append(servers, &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, webPort),
			Handler: pages,
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(servers))
	for _, srv := range servers {
		srv.ReadHeaderTimeout = 10 * time.Second
		go func(srv *http.Server) {
			err := server.Serve(ctx, srv, r.logger)
			if err != nil {
				cancel()
			}
			errs <- err
		}(srv)
	}

	var firstErr error
	for range servers {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
