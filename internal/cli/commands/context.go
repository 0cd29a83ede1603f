package commands

import (
	"context"
	"fmt"

	"github.com/jaytechpal/FileOrbit/internal/config"
	"github.com/jaytechpal/FileOrbit/internal/logger"
	"github.com/jaytechpal/FileOrbit/internal/navigation"
	"github.com/jaytechpal/FileOrbit/internal/operation"
	"github.com/jaytechpal/FileOrbit/internal/platform"
)

// appContext carries everything a command needs. It is constructed per
// invocation; commands receive it explicitly instead of reading globals.
type appContext struct {
	log       logger.Logger
	configMgr *config.Manager
	cfg       *config.Config
	caps      platform.Capabilities
	ops       *operation.Service
	bookmarks *navigation.Bookmarks
}

// newAppContext loads configuration and wires the services.
func newAppContext(ctx context.Context) (*appContext, error) {
	log := CreateLogger()

	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}

	cfg, err := mgr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	caps := platform.Detect(log)

	var opts []operation.Option
	if cfg.FileOperations.CopyBufferSize > 0 {
		opts = append(opts, operation.WithBufferSize(cfg.FileOperations.CopyBufferSize))
	}

	return &appContext{
		log:       log,
		configMgr: mgr,
		cfg:       cfg,
		caps:      caps,
		ops:       operation.NewService(log, caps, opts...),
		bookmarks: navigation.NewBookmarks(mgr.BookmarksPath()),
	}, nil
}
