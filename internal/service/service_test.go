package service_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/seed"
	"github.com/sandeepkv93/todolist/internal/service"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	tasks []seed.RemoteTask
	err   error
	calls int
}

func (f *fakeSource) FetchSeedTasks(context.Context) ([]seed.RemoteTask, error) {
	f.calls++
	return f.tasks, f.err
}

var seedInstant = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.Open(context.Background(), storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newService(t *testing.T, store service.Store, source service.SeedSource) *service.Service {
	t.Helper()
	return service.New(store, source, service.WithClock(func() time.Time { return seedInstant }))
}

func TestLoad_SeedsEmptyStore(t *testing.T) {
	store := newStore(t)
	source := &fakeSource{tasks: []seed.RemoteTask{{ID: 1, Todo: "Buy milk", Completed: false, UserID: 7}}}
	svc := newService(t, store, source)

	tasks, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.False(t, got.Completed)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "", got.Description)
	assert.True(t, got.CreatedAt.Equal(seedInstant))
	assert.Equal(t, 1, source.calls)
}

func TestLoad_SeedCountMatchesRemote(t *testing.T) {
	store := newStore(t)
	source := &fakeSource{tasks: []seed.RemoteTask{
		{ID: 1, Todo: "one", UserID: 1},
		{ID: 2, Todo: "two", Completed: true, UserID: 2},
		{ID: 3, Todo: "three", UserID: 3},
	}}
	svc := newService(t, store, source)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, remote := range source.tasks {
		local, err := store.Get(context.Background(), remote.ID)
		require.NoError(t, err)
		assert.Equal(t, remote.UserID, local.UserID)
		assert.Equal(t, remote.Completed, local.Completed)
		assert.Empty(t, local.Description)
	}
}

func TestLoad_NonEmptyStoreSkipsSeeding(t *testing.T) {
	store := newStore(t)
	_, err := store.Insert(context.Background(), model.Task{Title: "existing"})
	require.NoError(t, err)

	source := &fakeSource{tasks: []seed.RemoteTask{{ID: 99, Todo: "remote"}}}
	svc := newService(t, store, source)

	tasks, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "existing", tasks[0].Title)
	assert.Zero(t, source.calls)
}

func TestLoad_RemoteFailureLeavesStoreEmpty(t *testing.T) {
	store := newStore(t)
	transport := &seed.NetworkError{URL: seed.DefaultURL, Err: errors.New("connection refused")}
	svc := newService(t, store, &fakeSource{err: transport})

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, seed.IsNetwork(err))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoad_DuplicateRemoteIDsAreAllStored(t *testing.T) {
	cases := map[string][]seed.RemoteTask{
		"same id":       {{ID: 1, Todo: "a"}, {ID: 1, Todo: "b"}},
		"zero then one": {{ID: 0, Todo: "a"}, {ID: 1, Todo: "b"}},
	}
	for name, remote := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			svc := newService(t, store, &fakeSource{tasks: remote})

			tasks, err := svc.Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, tasks, len(remote))

			n, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, len(remote), n)
		})
	}
}

func TestLoad_FailedSeedInsertLeavesStoreEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	store, err := storage.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TRIGGER reject_poem BEFORE INSERT ON tasks
		WHEN NEW.title = 'Memorize a poem'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	source := &fakeSource{tasks: []seed.RemoteTask{
		{ID: 1, Todo: "Do something nice", UserID: 26},
		{ID: 2, Todo: "Memorize a poem", UserID: 13},
		{ID: 3, Todo: "Watch a classic movie", UserID: 68},
	}}
	svc := newService(t, store, source)

	_, err = svc.Load(context.Background())
	require.Error(t, err)
	var storageErr *storage.Error
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "insert all", storageErr.Op)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoad_WithoutSourceReturnsEmptyList(t *testing.T) {
	svc := newService(t, newStore(t), nil)
	tasks, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

type brokenStore struct {
	service.Store
	err error
}

func (b brokenStore) Count(context.Context) (int, error) { return 0, b.err }

func TestLoad_StorageErrorPropagates(t *testing.T) {
	storageErr := &storage.Error{Op: "count", Err: errors.New("disk I/O error")}
	source := &fakeSource{}
	svc := newService(t, brokenStore{err: storageErr}, source)

	_, err := svc.Load(context.Background())
	var target *storage.Error
	require.ErrorAs(t, err, &target)
	assert.Zero(t, source.calls)
}

func TestAdd_AppearsInFetchAll(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store, nil)

	saved, err := svc.Add(context.Background(), "Buy milk", "two litres")
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, model.LocalUserID, saved.UserID)

	tasks, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "two litres", tasks[0].Description)
}

func TestAdd_RejectsBlankForm(t *testing.T) {
	store := newStore(t)
	svc := newService(t, store, nil)

	_, err := svc.Add(context.Background(), "  ", "")
	require.ErrorIs(t, err, service.ErrEmptyTask)

	n, _ := store.Count(context.Background())
	assert.Zero(t, n)

	_, err = svc.Add(context.Background(), "", "only a description")
	require.NoError(t, err)
}

func TestSaveToggleDeleteAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := newService(t, store, nil)

	milk, err := svc.Add(ctx, "Buy milk", "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Walk dog", "")
	require.NoError(t, err)

	milk.Description = "semi-skimmed"
	edited, err := svc.Save(ctx, milk)
	require.NoError(t, err)
	assert.Equal(t, "semi-skimmed", edited.Description)

	toggled, err := svc.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	found, err := svc.Search(ctx, "MILK")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Buy milk", found[0].Title)

	require.NoError(t, svc.Delete(ctx, milk.ID))
	require.NoError(t, svc.Delete(ctx, milk.ID))

	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)

	_, err = svc.Toggle(ctx, milk.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFromRemote(t *testing.T) {
	task := service.FromRemote(seed.RemoteTask{ID: 5, Todo: "Read", Completed: true, UserID: 9}, seedInstant)
	assert.Equal(t, model.Task{ID: 5, Title: "Read", CreatedAt: seedInstant, Completed: true, UserID: 9}, task)
}
