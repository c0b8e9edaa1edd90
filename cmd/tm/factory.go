package main

import (
	"fmt"
	"os"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/persistence"
	"task-manager/internal/store"
	"task-manager/internal/validation"
)

// newAPI wires the store, the configured file format and the api together
func newAPI(cfg *config.Config) (api.API, error) {
	if err := ensureDataDir(cfg); err != nil {
		return nil, err
	}

	p, err := persistence.New(cfg)
	if err != nil {
		return nil, err
	}

	taskStore := store.NewWithValidator(validation.NewTaskValidatorWithConfig(cfg))
	return api.New(taskStore, p, cfg), nil
}

// ensureDataDir creates the data directory if it does not exist
func ensureDataDir(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Storage.Dir, os.FileMode(cfg.Storage.DirPermissions)); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
