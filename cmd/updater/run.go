package main

import (
	"context"
	"fmt"
	"os"

	"task-description-updater/internal/cleaner"
	"task-description-updater/internal/httpserver"
	"task-description-updater/internal/middleware"
	"task-description-updater/internal/model"
	"task-description-updater/internal/poller"
	taskRepo "task-description-updater/internal/task/repository/clickup"
	"task-description-updater/internal/task/usecase"
)

func run(parent context.Context, configPath string, once bool) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signalContext(parent)
	defer stop()

	a.l.Info(ctx, "Starting task description updater...")
	a.l.Infof(ctx, "Environment: %s", a.cfg.Environment.Name)

	// Status server runs beside the poller and reports not ready until
	// the hierarchy is resolved.
	var srv *httpserver.HTTPServer
	srvDone := make(chan error, 1)
	srvCtx, stopSrv := context.WithCancel(ctx)
	defer stopSrv()

	if a.cfg.HTTPServer.Enabled && !once {
		srv, err = httpserver.New(a.l, httpserver.Config{
			Logger:      a.l,
			Port:        a.cfg.HTTPServer.Port,
			Mode:        a.cfg.HTTPServer.Mode,
			Environment: a.cfg.Environment.Name,
			Middleware: middleware.Config{
				AllowedOrigins:  a.cfg.HTTPServer.AllowedOrigins,
				RateLimitPerMin: a.cfg.HTTPServer.RateLimitPerMin,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to initialize status server: %w", err)
		}
		go func() { srvDone <- srv.Run(srvCtx) }()
	} else {
		close(srvDone)
	}

	h, err := a.resolveHierarchy(ctx)
	if err != nil {
		a.l.Errorf(ctx, "Failed to resolve ClickUp hierarchy: %v", err)
		return err
	}
	a.l.Infof(ctx, "Dispatch list resolved: %s (user %s)", h.DispatchListID, h.ActiveUser.Username)

	// Task domain
	repo := taskRepo.New(a.client, a.l)
	textCleaner := cleaner.New(model.RuleSet{
		Subjects: a.cfg.Rules.Subjects,
		Headers:  a.cfg.Rules.Headers,
		Footers:  a.cfg.Rules.Footers,
	})
	uc := usecase.New(a.l, repo, textCleaner, a.cfg.Poller.Comment)

	p := poller.New(uc, poller.Config{
		ListID:   h.DispatchListID,
		Cycles:   a.cfg.Poller.Cycles,
		Interval: a.cfg.Poller.Interval,
		Comment:  a.cfg.Poller.Comment,
	}, a.l, os.Stdout)
	if srv != nil {
		srv.Attach(p)
	}

	if once {
		_, err = p.RunOnce(ctx)
	} else {
		err = p.Run(ctx)
	}

	stopSrv()
	if srvErr := <-srvDone; srvErr != nil {
		a.l.Errorf(ctx, "Status server: %v", srvErr)
	}

	if err != nil {
		return err
	}
	a.l.Info(ctx, "Updater stopped gracefully")
	return nil
}
