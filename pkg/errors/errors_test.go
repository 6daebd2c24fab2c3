package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewError tests the basic creation of errors.
func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
	}{
		{
			name:    "ConfigurationInvalid",
			code:    ConfigurationInvalid,
			message: "no termination criterion defined",
		},
		{
			name:    "SelectionConflict",
			code:    SelectionConflict,
			message: "selection exceeds population",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)

			customErr, ok := err.(*Error)

			assert.True(t, ok, "should be a custom *Error")
			assert.Equal(t, tt.code, customErr.Code())
			assert.Equal(t, tt.message, customErr.Error())

			// Test nil original error for new errors
			assert.Nil(t, customErr.Unwrap())
		})
	}
}

// TestWrapError tests error wrapping functionality.
func TestWrapError(t *testing.T) {
	originalErr := stderrors.New("original error")

	tests := []struct {
		name       string
		err        error
		code       ErrorCode
		wrapMsg    string
		expectNil  bool
		expectCode ErrorCode
	}{
		{
			name:       "Wrap normal error",
			err:        originalErr,
			code:       EvaluationFailed,
			wrapMsg:    "evaluation context",
			expectNil:  false,
			expectCode: EvaluationFailed,
		},
		{
			name:      "Wrap nil error",
			err:       nil,
			code:      EvaluationFailed,
			wrapMsg:   "evaluation context",
			expectNil: true,
		},
		{
			name:       "Wrap custom error",
			err:        New(InvalidInput, "bad input"),
			code:       AdvanceFailed,
			wrapMsg:    "advance context",
			expectNil:  false,
			expectCode: AdvanceFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.code, tt.wrapMsg)

			if tt.expectNil {
				assert.Nil(t, wrapped)
				return
			}

			assert.NotNil(t, wrapped)

			ourErr := wrapped.(*Error)
			assert.Equal(t, tt.expectCode, ourErr.Code())
			assert.Contains(t, ourErr.Error(), tt.wrapMsg)
			assert.Equal(t, tt.err, ourErr.Unwrap())
		})
	}
}

// TestWithFields tests adding structured context to errors.
func TestWithFields(t *testing.T) {
	t.Run("adds fields to custom error", func(t *testing.T) {
		err := New(SelectionConflict, "too many selections")
		err = WithFields(err, Fields{"n_select": 7, "population": 5})

		ourErr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, SelectionConflict, ourErr.Code())
		assert.Equal(t, 7, ourErr.Fields()["n_select"])
		assert.Contains(t, err.Error(), "too many selections")
	})

	t.Run("merges fields without mutating the original", func(t *testing.T) {
		base := New(InvalidInput, "bad matrix")
		first := WithFields(base, Fields{"rows": 3})
		second := WithFields(first, Fields{"cols": 4})

		assert.Len(t, first.(*Error).Fields(), 1)
		assert.Len(t, second.(*Error).Fields(), 2)
	})

	t.Run("wraps plain error as Unknown", func(t *testing.T) {
		err := WithFields(stderrors.New("plain"), Fields{"k": "v"})
		ourErr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, Unknown, ourErr.Code())
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, WithFields(nil, Fields{"k": "v"}))
	})
}

// TestErrorMatching tests errors.Is and errors.As integration.
func TestErrorMatching(t *testing.T) {
	err := Wrap(stderrors.New("boom"), EvaluationFailed, "evaluation failed")

	t.Run("Is matches by code", func(t *testing.T) {
		assert.True(t, stderrors.Is(err, New(EvaluationFailed, "anything")))
		assert.False(t, stderrors.Is(err, New(InvalidInput, "anything")))
	})

	t.Run("As extracts the custom error", func(t *testing.T) {
		var target *Error
		require.True(t, stderrors.As(err, &target))
		assert.Equal(t, EvaluationFailed, target.Code())
	})
}

// TestCheckContext tests context cancellation wrapping.
func TestCheckContext(t *testing.T) {
	t.Run("live context passes", func(t *testing.T) {
		assert.NoError(t, CheckContext(context.Background(), "run"))
	})

	t.Run("canceled context fails with Canceled code", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := CheckContext(ctx, "run")
		require.Error(t, err)

		var target *Error
		require.True(t, stderrors.As(err, &target))
		assert.Equal(t, Canceled, target.Code())
		assert.Contains(t, err.Error(), "run canceled")
	})
}
