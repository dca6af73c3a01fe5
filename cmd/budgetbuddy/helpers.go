package main

import (
	"context"
	"errors"

	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/Veraticus/budgetbuddy/internal/storage"
)

func (a *app) repository() *storage.Repository {
	return storage.NewRepository(a.cfg.DataFile)
}

// loadProfiles loads the collection, turning corrupt data into a user-facing error.
func (a *app) loadProfiles(ctx context.Context, repo *storage.Repository) (model.Collection, error) {
	profiles, err := repo.LoadProfiles(ctx)
	if errors.Is(err, common.ErrCorruptData) {
		return nil, common.NewUserError("data file "+repo.Path()+" is unreadable; fix or move it aside", err)
	}
	return profiles, err
}

// updateProfiles loads the collection, applies fn and saves the result.
// Nothing is written if fn fails.
func (a *app) updateProfiles(ctx context.Context, fn func(*storage.Repository, model.Collection) error) error {
	repo := a.repository()

	profiles, err := a.loadProfiles(ctx, repo)
	if err != nil {
		return err
	}

	if err := fn(repo, profiles); err != nil {
		return err
	}

	if err := repo.SaveProfiles(ctx, profiles); err != nil {
		common.LogError(err, "failed to save profiles", common.Fields{"path": repo.Path()})
		return err
	}
	return nil
}
