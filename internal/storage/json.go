package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/google/uuid"
)

// ErrInconsistentCollection is returned when a collection cannot be saved
// because its keys and profiles disagree.
var ErrInconsistentCollection = errors.New("inconsistent collection")

// SaveProfiles writes the whole collection to the data file, replacing it.
// The document is written to a temporary file first and renamed into place,
// so a failed save leaves the previous file untouched.
func (r *Repository) SaveProfiles(ctx context.Context, c model.Collection) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if c == nil {
		c = model.Collection{}
	}
	if err := checkConsistent(c); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	r.logger.Debug("saved profiles", "path", r.path, "count", len(c))
	return nil
}

// LoadProfiles reads the data file and rebuilds the collection.
// A missing file yields an empty collection. A file that exists but cannot
// be decoded yields an error wrapping common.ErrCorruptData.
func (r *Repository) LoadProfiles(ctx context.Context) (model.Collection, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("no data file, starting empty", "path", r.path)
		return model.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	c, err := decodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptData, r.path, err)
	}

	r.logger.Debug("loaded profiles", "path", r.path, "count", len(c))
	return c, nil
}

func decodeCollection(data []byte) (model.Collection, error) {
	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("top-level value is not an object")
	}
	for key, profile := range c {
		if profile == nil {
			return nil, fmt.Errorf("profile %q is null", key)
		}
		if profile.Name != key {
			return nil, fmt.Errorf("profile stored under %q is named %q", key, profile.Name)
		}
	}
	return c, nil
}

func checkConsistent(c model.Collection) error {
	for key, profile := range c {
		if profile == nil {
			return fmt.Errorf("%w: profile %q is nil", ErrInconsistentCollection, key)
		}
		if profile.Name != key {
			return fmt.Errorf("%w: profile stored under %q is named %q", ErrInconsistentCollection, key, profile.Name)
		}
	}
	return nil
}

// writeFileAtomic writes data next to path under a unique name and renames it over path.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
