package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	inner := fmt.Errorf("profile %q: %w", "janet", ErrDuplicateEntry)
	err := NewUserError("could not create profile", inner)

	assert.Equal(t, `could not create profile: profile "janet": duplicate entry`, err.Error())
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Equal(t, "could not create profile", userErr.UserMessage)

	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "not found", err: fmt.Errorf("x: %w", ErrNotFound), want: true},
		{name: "duplicate", err: ErrDuplicateEntry, want: true},
		{name: "empty name", err: ErrEmptyName, want: true},
		{name: "corrupt", err: ErrCorruptData, want: false},
		{name: "other", err: errors.New("disk full"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidation(tt.err))
		})
	}
}
