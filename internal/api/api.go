package api

import (
	"context"
	"errors"
	"io"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/export"
	"task-manager/internal/logging"
	"task-manager/internal/persistence"
	"task-manager/internal/store"
)

// API is the boundary the presentation layer uses to work with the task list.
// Indices are zero-based.
type API interface {
	// Editing
	ComposeNew() domain.TaskDraft
	AddTask(title, description string) (*domain.TaskRecord, error)
	DeleteTask(index int) (*domain.TaskRecord, error)

	// Reading
	SelectTask(index int) (*domain.TaskPreview, bool)
	PreviewExisting(index int) (*domain.TaskPreview, error)
	ListTasks() []domain.TaskRecord

	// Persistence; an empty path means DefaultPath()
	SaveTasks(ctx context.Context, path string) error
	LoadTasks(ctx context.Context, path string) (int, error)
	DefaultPath() string

	ExportTasks(w io.Writer, format string) error
}

type apiImpl struct {
	store       *store.TaskStore
	persistence persistence.Persistence
	exporter    *export.Exporter
	defaultPath string
	ioTimeout   time.Duration
}

// New creates an API over taskStore that saves and loads through p.
// A nil cfg uses the default configuration.
func New(taskStore *store.TaskStore, p persistence.Persistence, cfg *config.Config) API {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &apiImpl{
		store:       taskStore,
		persistence: p,
		exporter:    export.NewExporter("Tasks"),
		defaultPath: cfg.GetDataPath(),
		ioTimeout:   cfg.GetIOTimeout(),
	}
}

// ComposeNew returns an empty draft for a new task
func (a *apiImpl) ComposeNew() domain.TaskDraft {
	return domain.TaskDraft{}
}

func (a *apiImpl) AddTask(title, description string) (*domain.TaskRecord, error) {
	record, err := a.store.Add(title, description)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *apiImpl) DeleteTask(index int) (*domain.TaskRecord, error) {
	record, err := a.store.RemoveAt(index)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *apiImpl) SelectTask(index int) (*domain.TaskPreview, bool) {
	record, ok := a.store.Get(index)
	if !ok {
		return nil, false
	}
	preview := domain.NewTaskPreview(index, record)
	return &preview, true
}

// PreviewExisting is SelectTask with an index error instead of a flag
func (a *apiImpl) PreviewExisting(index int) (*domain.TaskPreview, error) {
	preview, ok := a.SelectTask(index)
	if !ok {
		return nil, apperrors.NewIndexError(index, a.store.Len())
	}
	return preview, nil
}

func (a *apiImpl) ListTasks() []domain.TaskRecord {
	return a.store.All()
}

func (a *apiImpl) SaveTasks(ctx context.Context, path string) error {
	path = a.resolve(path)
	ctx, cancel := context.WithTimeout(ctx, a.ioTimeout)
	defer cancel()

	if err := a.persistence.Save(ctx, a.store.All(), path); err != nil {
		return a.timeoutOr(err, "save tasks")
	}
	return nil
}

// LoadTasks replaces the store contents only after the whole file has been read
// and validated; on error the store is unchanged.
func (a *apiImpl) LoadTasks(ctx context.Context, path string) (int, error) {
	path = a.resolve(path)
	ctx, cancel := context.WithTimeout(ctx, a.ioTimeout)
	defer cancel()

	records, err := a.persistence.Load(ctx, path)
	if err != nil {
		return 0, a.timeoutOr(err, "load tasks")
	}

	a.store.ReplaceAll(records)
	logging.Debugf("store now holds %d tasks from %s\n", len(records), path)
	return len(records), nil
}

func (a *apiImpl) DefaultPath() string {
	return a.defaultPath
}

func (a *apiImpl) ExportTasks(w io.Writer, format string) error {
	return a.exporter.Export(w, a.store.All(), format)
}

func (a *apiImpl) resolve(path string) string {
	if path == "" {
		return a.defaultPath
	}
	return path
}

func (a *apiImpl) timeoutOr(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(operation, a.ioTimeout.String())
	}
	return err
}
