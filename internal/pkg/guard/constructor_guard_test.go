package guard_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("task not constructed")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("Acknowledge must be created via NewAcknowledge")

	type acknowledge struct {
		taskID int64
		guard  guard.ConstructorGuard
	}

	newAcknowledge := func(taskID int64) (acknowledge, error) {
		if taskID <= 0 {
			return acknowledge{}, errors.New("task id must be positive")
		}
		return acknowledge{taskID: taskID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		cmd, err := newAcknowledge(7)
		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, int64(7), cmd.taskID)
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		cmd := acknowledge{taskID: 7}
		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("constructor_rules_apply", func(t *testing.T) {
		_, err := newAcknowledge(0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}
