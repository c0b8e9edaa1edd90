package api

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/persistence"
	"task-manager/internal/store"
	"task-manager/internal/validation"
)

// fakePersistence keeps saved snapshots in memory and can be told to fail
type fakePersistence struct {
	files   map[string][]domain.TaskRecord
	saveErr error
	loadErr error
	paths   []string
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{files: make(map[string][]domain.TaskRecord)}
}

func (f *fakePersistence) Save(ctx context.Context, records []domain.TaskRecord, path string) error {
	f.paths = append(f.paths, path)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.files[path] = append([]domain.TaskRecord(nil), records...)
	return nil
}

func (f *fakePersistence) Load(ctx context.Context, path string) ([]domain.TaskRecord, error) {
	f.paths = append(f.paths, path)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	records, ok := f.files[path]
	if !ok {
		return nil, apperrors.NewPersistenceError("load tasks from", path, os.ErrNotExist)
	}
	return append([]domain.TaskRecord(nil), records...), nil
}

func setupTestAPI(t *testing.T) (API, *fakePersistence) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Storage.Dir = "data"
	fake := newFakePersistence()
	return New(store.New(), fake, cfg), fake
}

func addTasks(t *testing.T, a API, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := a.AddTask(title, "about "+title)
		require.NoError(t, err)
	}
}

func titles(records []domain.TaskRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func TestAPI_ComposeNew(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTasks(t, a, "A")
	assert.Equal(t, domain.TaskDraft{}, a.ComposeNew())
}

func TestAPI_AddTask(t *testing.T) {
	a, _ := setupTestAPI(t)

	record, err := a.AddTask(" Buy milk ", "2%  whole")
	require.NoError(t, err)
	assert.Equal(t, &domain.TaskRecord{Title: "Buy milk", Description: "2%  whole"}, record)
	assert.Equal(t, []domain.TaskRecord{*record}, a.ListTasks())

	_, err = a.AddTask("   ", "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	assert.Len(t, a.ListTasks(), 1)

	var ve *validation.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
}

func TestAPI_DeleteTask(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTasks(t, a, "A", "B", "C")

	removed, err := a.DeleteTask(1)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Title)
	assert.Equal(t, []string{"A", "C"}, titles(a.ListTasks()))

	_, err = a.DeleteTask(2)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeIndex))
	_, err = a.DeleteTask(-1)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeIndex))
	assert.Len(t, a.ListTasks(), 2)
}

func TestAPI_SelectTask(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTasks(t, a, "A", "B")

	preview, ok := a.SelectTask(1)
	require.True(t, ok)
	assert.Equal(t, &domain.TaskPreview{Index: 1, Title: "B", Description: "about B"}, preview)

	preview, ok = a.SelectTask(2)
	assert.False(t, ok)
	assert.Nil(t, preview)
}

func TestAPI_PreviewExisting(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTasks(t, a, "A")

	preview, err := a.PreviewExisting(0)
	require.NoError(t, err)
	assert.Equal(t, "A", preview.Title)

	_, err = a.PreviewExisting(3)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeIndex))
}

func TestAPI_SaveAndLoad_DefaultPath(t *testing.T) {
	a, fake := setupTestAPI(t)
	addTasks(t, a, "A", "B")
	expectedPath := filepath.Join("data", "tasks.dat")
	assert.Equal(t, expectedPath, a.DefaultPath())

	require.NoError(t, a.SaveTasks(context.Background(), ""))
	_, err := a.DeleteTask(0)
	require.NoError(t, err)

	n, err := a.LoadTasks(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"A", "B"}, titles(a.ListTasks()))
	assert.Equal(t, []string{expectedPath, expectedPath}, fake.paths)
}

func TestAPI_SaveFailureLeavesStoreUnchanged(t *testing.T) {
	a, fake := setupTestAPI(t)
	addTasks(t, a, "A", "B")
	fake.saveErr = apperrors.NewPersistenceError("save tasks to", "x", errors.New("disk full"))

	err := a.SaveTasks(context.Background(), "x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
	assert.Equal(t, []string{"A", "B"}, titles(a.ListTasks()))
}

func TestAPI_LoadFailureLeavesStoreUnchanged(t *testing.T) {
	a, fake := setupTestAPI(t)
	addTasks(t, a, "A", "B")

	n, err := a.LoadTasks(context.Background(), "missing.dat")
	assert.Zero(t, n)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
	assert.Equal(t, []string{"A", "B"}, titles(a.ListTasks()))

	fake.loadErr = apperrors.NewPersistenceError("load tasks from", "x", persistence.ErrUnknownFormat)
	_, err = a.LoadTasks(context.Background(), "x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
	assert.Equal(t, []string{"A", "B"}, titles(a.ListTasks()))
}

func TestAPI_TimeoutIsReported(t *testing.T) {
	a, fake := setupTestAPI(t)
	fake.loadErr = apperrors.NewPersistenceError("load tasks from", "x", context.DeadlineExceeded)

	_, err := a.LoadTasks(context.Background(), "x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}

func TestAPI_ExportTasks(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTasks(t, a, "A")

	var buf bytes.Buffer
	require.NoError(t, a.ExportTasks(&buf, "csv"))
	assert.Equal(t, "Position,Title,Description\n1,A,about A\n", buf.String())
}

// Full round trip through the real codecs: two tasks saved, a fresh store loaded.
func TestAPI_RoundTripScenario(t *testing.T) {
	for _, format := range []string{config.FormatJSON, config.FormatSQLite} {
		t.Run(format, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Storage.Dir = t.TempDir()
			cfg.Storage.Format = format
			cfg.Storage.IOTimeout = 5 * time.Second
			p, err := persistence.New(cfg)
			require.NoError(t, err)

			path := filepath.Join(cfg.Storage.Dir, "t.dat")
			writer := New(store.New(), p, cfg)
			_, err = writer.AddTask("Buy milk", "2%  whole")
			require.NoError(t, err)
			_, err = writer.AddTask("Pay bills", "due Friday\nmulti-line")
			require.NoError(t, err)
			require.NoError(t, writer.SaveTasks(context.Background(), path))

			reader := New(store.New(), p, cfg)
			n, err := reader.LoadTasks(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, []domain.TaskRecord{
				{Title: "Buy milk", Description: "2%  whole"},
				{Title: "Pay bills", Description: "due Friday\nmulti-line"},
			}, reader.ListTasks())
		})
	}
}

func TestAPI_LoadCorruptFileKeepsStore(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.Dir = t.TempDir()
	p, err := persistence.New(cfg)
	require.NoError(t, err)

	path := filepath.Join(cfg.Storage.Dir, "t.dat")
	require.NoError(t, os.WriteFile(path, []byte{0xca, 0xfe, 0xba, 0xbe}, 0644))

	a := New(store.New(), p, cfg)
	addTasks(t, a, "keep me")

	_, err = a.LoadTasks(context.Background(), path)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
	assert.Equal(t, []string{"keep me"}, titles(a.ListTasks()))
}
