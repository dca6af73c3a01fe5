// Package storage provides the data persistence layer for budgetbuddy.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrNilCollection = errors.New("collection cannot be nil")
)

// validateContext ensures the context is usable.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateName ensures a profile name is not empty. Names are never trimmed.
func validateName(name, paramName string) error {
	if name == "" {
		return fmt.Errorf("%w: %s", common.ErrEmptyName, paramName)
	}
	return nil
}

func validateCollection(c model.Collection) error {
	if c == nil {
		return ErrNilCollection
	}
	return nil
}
