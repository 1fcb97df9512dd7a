package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sandeepkv93/todolist/internal/seed"
	"github.com/sandeepkv93/todolist/internal/service"
	"github.com/sandeepkv93/todolist/internal/storage"
)

// openService opens the task store and builds the service over it. The
// returned func closes the store.
func (a *app) openService(ctx context.Context) (*service.Service, func(), error) {
	store, err := storage.Open(ctx, a.cfg.DBPath)
	if err != nil {
		a.logger.Error("failed to open task store", slog.String("path", a.cfg.DBPath), slog.Any("error", err))
		return nil, nil, fmt.Errorf("open task store: %w", err)
	}

	var source service.SeedSource
	if a.cfg.SeedEnabled {
		source = seed.NewClient(a.cfg.SeedURL,
			seed.WithTimeout(a.cfg.SeedTimeout),
			seed.WithLogger(a.logger),
		)
	}
	svc := service.New(store, source, service.WithLogger(a.logger))

	closeStore := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("failed to close task store", slog.Any("error", err))
			return
		}
		a.logger.Debug("task store closed")
	}
	return svc, closeStore, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}
