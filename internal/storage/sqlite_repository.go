package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todolist/internal/model"
)

// MemoryPath selects a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// Fixed width so that lexical order of the column equals chronological order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const taskColumns = `id, title, description, created_at, completed, user_id`

const upsertTaskSQL = `
	INSERT INTO tasks (id, title, description, created_at, completed, user_id, title_key, description_key)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		created_at = CASE WHEN ? THEN tasks.created_at ELSE excluded.created_at END,
		completed = excluded.completed,
		user_id = excluded.user_id,
		title_key = excluded.title_key,
		description_key = excluded.description_key`

// insertSeedSQL keeps a task's own id when it is free; a taken or zero id
// falls back to the next value of the sequence.
const insertSeedSQL = `
	INSERT INTO tasks (id, title, description, created_at, completed, user_id, title_key, description_key)
	VALUES (
		CASE WHEN ? = 0 OR EXISTS (SELECT 1 FROM tasks WHERE id = ?) THEN NULL ELSE ? END,
		?, ?, ?, ?, ?, ?, ?)`

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &Error{Op: "open", Err: errors.New("empty database path")}
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &Error{Op: "open", Err: fmt.Errorf("create database directory: %w", err)}
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	if path == MemoryPath {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "open", Err: err}
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "migrate", Err: err}
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]model.Task, error) {
	out, err := r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	return out, wrap("fetch all", err)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	key := model.Fold(query)
	if key == "" {
		return r.FetchAll(ctx)
	}
	pattern := "%" + escapeLike(key) + "%"
	out, err := r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE title_key LIKE ? ESCAPE '\' OR description_key LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC`, pattern, pattern)
	return out, wrap("search", err)
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, wrap("get", err)
	}
	return task, nil
}

// Insert persists a new or modified task. A zero ID asks the store for the
// next id in its sequence; a zero CreatedAt is stamped once on first insert
// and left untouched on later updates.
func (r *SQLiteRepository) Insert(ctx context.Context, in model.Task) (model.Task, error) {
	id, err := r.upsert(ctx, r.db, in)
	if err != nil {
		return model.Task{}, wrap("insert", err)
	}
	return r.Get(ctx, id)
}

// InsertAll adds every task as a new row in a single transaction, so either
// all of them are stored or none. Tasks never replace each other: an id that
// is zero or already taken is reassigned from the sequence.
func (r *SQLiteRepository) InsertAll(ctx context.Context, in []model.Task) error {
	if len(in) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("insert all", err)
	}
	for _, task := range in {
		created := task.CreatedAt
		if created.IsZero() {
			created = r.now()
		}
		_, err := tx.ExecContext(ctx, insertSeedSQL,
			task.ID, task.ID, task.ID,
			task.Title, task.Description, mustTime(created), boolInt(task.Completed), task.UserID,
			model.Fold(task.Title), model.Fold(task.Description),
		)
		if err != nil {
			_ = tx.Rollback()
			return wrap("insert all", err)
		}
	}
	return wrap("insert all", tx.Commit())
}

// Delete removes the task with the given id. Absent ids are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return wrap("delete", err)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) upsert(ctx context.Context, ex execer, in model.Task) (int64, error) {
	keepCreated := in.CreatedAt.IsZero()
	created := in.CreatedAt
	if keepCreated {
		created = r.now()
	}
	var id any
	if in.ID != 0 {
		id = in.ID
	}
	res, err := ex.ExecContext(ctx, upsertTaskSQL,
		id, in.Title, in.Description, mustTime(created), boolInt(in.Completed), in.UserID,
		model.Fold(in.Title), model.Fold(in.Description),
		keepCreated,
	)
	if err != nil {
		return 0, err
	}
	if in.ID != 0 {
		return in.ID, nil
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var created string
	var completed int
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &created, &completed, &out.UserID); err != nil {
		return model.Task{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	out.CreatedAt = createdAt
	out.Completed = completed == 1
	return out, nil
}
