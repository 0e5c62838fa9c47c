package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *Error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "not found",
			err:          NotFound("user not found"),
			expectedCode: http.StatusNotFound,
			expectedMsg:  "user not found",
		},
		{
			name:         "forbidden",
			err:          Forbidden("this user already exists"),
			expectedCode: http.StatusForbidden,
			expectedMsg:  "this user already exists",
		},
		{
			name:         "custom code",
			err:          New("too many requests", http.StatusTooManyRequests),
			expectedCode: http.StatusTooManyRequests,
			expectedMsg:  "too many requests",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedCode, tc.err.Code)
			assert.Equal(t, tc.expectedMsg, tc.err.Error())
		})
	}
}

func TestAsUnwrapsChain(t *testing.T) {
	base := Forbidden("this user already exists")
	wrapped := fmt.Errorf("create user: %w", base)

	extracted, ok := As(wrapped)
	require.True(t, ok, "As should find the Error through fmt.Errorf wrapping")
	assert.Equal(t, base, extracted)
}

func TestAsRejectsOtherErrors(t *testing.T) {
	_, ok := As(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = As(nil)
	assert.False(t, ok)
}
