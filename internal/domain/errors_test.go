package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrSessionExpired,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "session",
			id:          "abc",
			expectedMsg: `session with id "abc" not found`,
		},
		{
			name:        "with entity only",
			entity:      "session",
			expectedMsg: "session not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "activation_code",
			message:     "bad format",
			expectedMsg: "validation failed for activation_code: bad format",
		},
		{
			name:        "without field",
			message:     "empty body",
			expectedMsg: "validation failed: empty body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.Equal(t, tt.message, validation.Message)
		})
	}
}

func TestValidationErrorWithValue(t *testing.T) {
	err := NewValidationErrorWithValue("activation_code", "bad format", "AB")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "AB", validation.Value)
}

func TestSessionExpiredError(t *testing.T) {
	err := NewSessionExpiredError("upstream session")

	assert.Equal(t, "session expired: missing upstream session", err.Error())
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "session expired", NewSessionExpiredError("").Error())
}

func TestUnavailableError(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			service:     "chongzhi",
			reason:      "no session cookie",
			expectedMsg: `service "chongzhi" unavailable: no session cookie`,
		},
		{
			name:        "without reason",
			service:     "redis",
			expectedMsg: `service "redis" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnavailableError(tt.service, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUnavailable)

			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.service, unavailable.Service)
			assert.Equal(t, tt.reason, unavailable.Reason)
		})
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isFunc   func(error) bool
		expected bool
	}{
		{"IsNotFound with NotFoundError", NewNotFoundError("session", "1"), IsNotFound, true},
		{"IsNotFound with wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), IsNotFound, true},
		{"IsNotFound with other error", ErrValidation, IsNotFound, false},
		{"IsNotFound with nil", nil, IsNotFound, false},

		{"IsValidation with ValidationError", NewValidationError("f", "m"), IsValidation, true},
		{"IsValidation with wrapped", fmt.Errorf("wrapped: %w", ErrValidation), IsValidation, true},
		{"IsValidation with other error", ErrNotFound, IsValidation, false},

		{"IsSessionExpired with typed", NewSessionExpiredError("code"), IsSessionExpired, true},
		{"IsSessionExpired with wrapped", fmt.Errorf("w: %w", ErrSessionExpired), IsSessionExpired, true},
		{"IsSessionExpired with other error", ErrUnavailable, IsSessionExpired, false},

		{"IsUnavailable with UnavailableError", NewUnavailableError("db", "x"), IsUnavailable, true},
		{"IsUnavailable with nil", nil, IsUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.isFunc(tt.err))
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	original := NewValidationError("json_token", "empty")
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", original))

	assert.True(t, IsValidation(wrapped))

	var validation *ValidationError
	require.ErrorAs(t, wrapped, &validation)
	assert.Equal(t, "json_token", validation.Field)
}
