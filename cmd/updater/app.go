package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"task-description-updater/config"
	"task-description-updater/internal/hierarchy"
	"task-description-updater/internal/model"
	"task-description-updater/pkg/clickup"
	"task-description-updater/pkg/log"
)

// app is what every command needs before it can talk to ClickUp.
type app struct {
	cfg    *config.Config
	l      log.Logger
	client *clickup.Client
}

func bootstrap(configPath string) (*app, error) {
	// 1. Configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
	})

	// 3. ClickUp client
	client := clickup.NewClient(clickup.Config{
		APIKey:   cfg.ClickUp.APIKey,
		AuthMode: cfg.ClickUp.AuthMode,
		Timeout:  cfg.ClickUp.RequestTimeout,
		URLs: clickup.URLs{
			Team:   cfg.ClickUp.URLs.Team,
			Space:  cfg.ClickUp.URLs.Space,
			Folder: cfg.ClickUp.URLs.Folder,
			List:   cfg.ClickUp.URLs.List,
			Task:   cfg.ClickUp.URLs.Task,
			User:   cfg.ClickUp.URLs.User,
		},
	})

	return &app{cfg: cfg, l: logger, client: client}, nil
}

func (a *app) resolveHierarchy(ctx context.Context) (model.Hierarchy, error) {
	c := a.cfg.ClickUp
	resolver := hierarchy.New(a.client, hierarchy.Target{
		TeamName:           c.TeamName,
		TeamID:             c.TeamID,
		SpaceNames:         c.SpaceNames,
		DispatchFolderName: c.Dispatch.FolderName,
		DispatchFolderID:   c.Dispatch.FolderID,
		DispatchListName:   c.Dispatch.ListName,
		DispatchListID:     c.Dispatch.ListID,
	}, a.l)

	return resolver.Resolve(ctx)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
