package dispatch

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		expected map[string]any
	}{
		{
			name:     "empty",
			values:   url.Values{},
			expected: map[string]any{},
		},
		{
			name: "singleton keys are flattened",
			values: url.Values{
				"username": []string{"alice"},
				"email":    []string{"alice@example.com"},
			},
			expected: map[string]any{
				"username": "alice",
				"email":    "alice@example.com",
			},
		},
		{
			name: "repeated keys keep ordered lists",
			values: url.Values{
				"tag":      []string{"a", "b", "c"},
				"username": []string{"alice"},
			},
			expected: map[string]any{
				"tag":      []string{"a", "b", "c"},
				"username": "alice",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeQuery(tc.values))
		})
	}
}

type createSchema struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileSchema struct {
	Bio string `json:"bio" validate:"required,min=8,max=160"`
}

type querySchema struct {
	Username string   `json:"username"`
	Tags     []string `json:"tags"`
}

func TestDecodeParams(t *testing.T) {
	t.Run("flattened and list values decode into the schema", func(t *testing.T) {
		var target querySchema
		fieldErrs := decodeParams(map[string]any{
			"username": "alice",
			"tags":     []string{"a", "b"},
		}, &target)

		require.Empty(t, fieldErrs)
		assert.Equal(t, "alice", target.Username)
		assert.Equal(t, []string{"a", "b"}, target.Tags)
	})

	t.Run("wrong value type reports the offending field", func(t *testing.T) {
		var target querySchema
		fieldErrs := decodeParams(map[string]any{
			"username": []string{"a", "b"},
		}, &target)

		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "username", fieldErrs[0].Field)
		assert.Equal(t, "has invalid type", fieldErrs[0].Message)
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var target createSchema
		fieldErrs := decodeJSON([]byte(`{"username":"a","email":"a@x.com","password":"p4ssw0rd!"}`), &target)

		require.Empty(t, fieldErrs)
		assert.Equal(t, "a", target.Username)
	})

	t.Run("malformed JSON reports a root error", func(t *testing.T) {
		var target createSchema
		fieldErrs := decodeJSON([]byte(`{"username":`), &target)

		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "root", fieldErrs[0].Field)
		assert.Equal(t, "is not a valid object", fieldErrs[0].Message)
	})

	t.Run("validation failures are reported per field with json names", func(t *testing.T) {
		var target createSchema
		fieldErrs := decodeJSON([]byte(`{"username":"a","email":"not-an-email","password":""}`), &target)

		require.Len(t, fieldErrs, 2)
		assert.Equal(t, FieldError{Field: "email", Message: "must be a valid email address"}, fieldErrs[0])
		assert.Equal(t, FieldError{Field: "password", Message: "is required"}, fieldErrs[1])
	})

	t.Run("length violations map to length messages", func(t *testing.T) {
		var target profileSchema
		fieldErrs := decodeJSON([]byte(`{"bio":"short"}`), &target)

		require.Len(t, fieldErrs, 1)
		assert.Equal(t, FieldError{Field: "bio", Message: "is too short"}, fieldErrs[0])
	})

	t.Run("missing required fields", func(t *testing.T) {
		var target createSchema
		fieldErrs := decodeJSON([]byte(`{}`), &target)

		require.Len(t, fieldErrs, 3)
		for _, fe := range fieldErrs {
			assert.Equal(t, "is required", fe.Message)
		}
	})
}

func TestDecodeJSONMany(t *testing.T) {
	factory := func() any { return &createSchema{} }

	t.Run("all valid elements parse in order", func(t *testing.T) {
		parsed, failures := decodeJSONMany([]byte(`[
			{"username":"a","email":"a@x.com","password":"p4ssw0rd!"},
			{"username":"b","email":"b@x.com","password":"p4ssw0rd!"}
		]`), factory)

		require.Nil(t, failures)
		require.Len(t, parsed, 2)
		assert.Equal(t, "a", parsed[0].(*createSchema).Username)
		assert.Equal(t, "b", parsed[1].(*createSchema).Username)
	})

	t.Run("one invalid element is reported at its position", func(t *testing.T) {
		parsed, failures := decodeJSONMany([]byte(`[
			{"username":"a","email":"a@x.com","password":"p4ssw0rd!"},
			{"username":"b","password":"p4ssw0rd!"},
			{"username":"c","email":"c@x.com","password":"p4ssw0rd!"}
		]`), factory)

		assert.Nil(t, parsed)
		elementErrs, ok := failures.([]ElementErrors)
		require.True(t, ok)
		require.Len(t, elementErrs, 1, "exactly one element should be reported")
		assert.Equal(t, 1, elementErrs[0].Index)
		require.Len(t, elementErrs[0].Errors, 1)
		assert.Equal(t, "email", elementErrs[0].Errors[0].Field)
	})

	t.Run("non-array body yields the synthetic root error", func(t *testing.T) {
		parsed, failures := decodeJSONMany([]byte(`{"username":"a"}`), factory)

		assert.Nil(t, parsed)
		fieldErrs, ok := failures.([]FieldError)
		require.True(t, ok)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "is not an array of objects", fieldErrs[0].Message)
	})
}
