// Package service sequences store and seed-source calls for every user
// intent: initial load with one-time seeding, search, add, edit, toggle and
// delete. It has no UI knowledge; the bubbletea model and the CLI both drive it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/seed"
)

var ErrEmptyTask = errors.New("service: task has neither title nor description")

// Store is the subset of storage.Repository the service needs.
type Store interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Insert(ctx context.Context, in model.Task) (model.Task, error)
	InsertAll(ctx context.Context, in []model.Task) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type SeedSource interface {
	FetchSeedTasks(ctx context.Context) ([]seed.RemoteTask, error)
}

type Service struct {
	store  Store
	source SeedSource
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a service. A nil source disables seeding.
func New(store Store, source SeedSource, opts ...Option) *Service {
	s := &Service{
		store:  store,
		source: source,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the full task list, importing the remote demo tasks first if
// the store is empty. A non-empty store never reaches the seed source.
func (s *Service) Load(ctx context.Context) ([]model.Task, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Error("count tasks failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load: %w", err)
	}
	if n == 0 && s.source != nil {
		if err := s.seed(ctx); err != nil {
			s.logger.Error("seeding failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("load: %w", err)
		}
	}
	tasks, err := s.store.FetchAll(ctx)
	if err != nil {
		s.logger.Error("fetch tasks failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load: %w", err)
	}
	s.logger.Debug("tasks loaded", slog.Int("count", len(tasks)))
	return tasks, nil
}

func (s *Service) seed(ctx context.Context) error {
	remote, err := s.source.FetchSeedTasks(ctx)
	if err != nil {
		return err
	}
	seededAt := s.now().UTC()
	tasks := make([]model.Task, 0, len(remote))
	for _, item := range remote {
		tasks = append(tasks, FromRemote(item, seededAt))
	}
	if err := s.store.InsertAll(ctx, tasks); err != nil {
		return err
	}
	stored, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("seeded store from remote", slog.Int("remote", len(tasks)), slog.Int("stored", stored))
	return nil
}

// FromRemote maps a demo item onto a local task created at seededAt.
func FromRemote(item seed.RemoteTask, seededAt time.Time) model.Task {
	return model.Task{
		ID:        item.ID,
		Title:     item.Todo,
		CreatedAt: seededAt,
		Completed: item.Completed,
		UserID:    item.UserID,
	}
}

func (s *Service) List(ctx context.Context) ([]model.Task, error) {
	return s.store.FetchAll(ctx)
}

func (s *Service) Search(ctx context.Context, query string) ([]model.Task, error) {
	tasks, err := s.store.Search(ctx, query)
	if err != nil {
		s.logger.Error("search failed", slog.String("query", query), slog.String("error", err.Error()))
		return nil, err
	}
	return tasks, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Add(ctx context.Context, title, description string) (model.Task, error) {
	task := model.NewTask(title, description, s.now())
	if task.IsEmpty() {
		return model.Task{}, ErrEmptyTask
	}
	saved, err := s.store.Insert(ctx, task)
	if err != nil {
		s.logger.Error("add task failed", slog.String("error", err.Error()))
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}
	s.logger.Info("task added", slog.Int64("id", saved.ID))
	return saved, nil
}

// Save persists edits to an existing task's title and description.
func (s *Service) Save(ctx context.Context, task model.Task) (model.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	task.Description = strings.TrimSpace(task.Description)
	saved, err := s.store.Insert(ctx, task)
	if err != nil {
		s.logger.Error("save task failed", slog.Int64("id", task.ID), slog.String("error", err.Error()))
		return model.Task{}, fmt.Errorf("save task %d: %w", task.ID, err)
	}
	return saved, nil
}

func (s *Service) Toggle(ctx context.Context, id int64) (model.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	saved, err := s.store.Insert(ctx, task.Toggled())
	if err != nil {
		s.logger.Error("toggle task failed", slog.Int64("id", id), slog.String("error", err.Error()))
		return model.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("delete task failed", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	s.logger.Info("task deleted", slog.Int64("id", id))
	return nil
}
