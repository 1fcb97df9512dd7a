package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todolist/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Error reports a failed read or write against the local datastore.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &Error{Op: op, Err: err}
}

type Repository interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Insert(ctx context.Context, in model.Task) (model.Task, error)
	InsertAll(ctx context.Context, in []model.Task) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Close() error
}
