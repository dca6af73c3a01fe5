package storage

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
)

// DefaultDataFile is the data file used when no path is configured.
const DefaultDataFile = "budgetbuddy_data.json"

// Repository manages profiles in a caller-owned collection and persists
// the whole collection as a single JSON document.
type Repository struct {
	logger *slog.Logger
	path   string
}

// NewRepository creates a repository backed by the JSON file at path.
func NewRepository(path string) *Repository {
	if path == "" {
		path = DefaultDataFile
	}
	return &Repository{
		path:   path,
		logger: slog.Default().With("component", "repository"),
	}
}

// Path returns the data file location.
func (r *Repository) Path() string {
	return r.path
}

// CreateProfile registers a new empty profile under name and returns it.
// The returned profile is owned by the collection.
func (r *Repository) CreateProfile(c model.Collection, name string) (*model.Profile, error) {
	if err := validateCollection(c); err != nil {
		return nil, err
	}
	if err := validateName(name, "name"); err != nil {
		return nil, err
	}
	if _, exists := c[name]; exists {
		return nil, fmt.Errorf("profile %q: %w", name, common.ErrDuplicateEntry)
	}

	profile := model.NewProfile(name)
	c[name] = profile

	r.logger.Debug("created profile", "name", name)
	return profile, nil
}

// RenameProfile moves the profile stored under oldName to newName and
// updates its Name. On error the collection is unchanged.
func (r *Repository) RenameProfile(c model.Collection, oldName, newName string) error {
	if err := validateCollection(c); err != nil {
		return err
	}
	if err := validateName(oldName, "old name"); err != nil {
		return err
	}
	if err := validateName(newName, "new name"); err != nil {
		return err
	}

	profile, ok := c[oldName]
	if !ok {
		return fmt.Errorf("profile %q: %w", oldName, common.ErrNotFound)
	}
	if _, exists := c[newName]; exists {
		return fmt.Errorf("profile %q: %w", newName, common.ErrDuplicateEntry)
	}

	delete(c, oldName)
	profile.Name = newName
	c[newName] = profile

	r.logger.Debug("renamed profile", "from", oldName, "to", newName)
	return nil
}

// DeleteProfile removes the profile stored under name.
func (r *Repository) DeleteProfile(c model.Collection, name string) error {
	if err := validateCollection(c); err != nil {
		return err
	}
	if err := validateName(name, "name"); err != nil {
		return err
	}
	if _, ok := c[name]; !ok {
		return fmt.Errorf("profile %q: %w", name, common.ErrNotFound)
	}

	delete(c, name)

	r.logger.Debug("deleted profile", "name", name)
	return nil
}

// Profile looks up a profile by exact name.
func (r *Repository) Profile(c model.Collection, name string) (*model.Profile, error) {
	profile, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", name, common.ErrNotFound)
	}
	return profile, nil
}
