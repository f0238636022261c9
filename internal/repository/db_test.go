package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntryError(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry 'mario.rossi@nimbus.test' for key 'users.email'")
	assert.True(t, isDuplicateEntryError(dup))

	assert.False(t, isDuplicateEntryError(errors.New("Error 1146 (42S02): Table 'nimbus.users' doesn't exist")))
	assert.False(t, isDuplicateEntryError(nil))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound,
		ErrDuplicateUser,
		ErrFavoriteNotFound,
		ErrDuplicateFavorite,
		ErrTokenNotFound,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
