package dispatch

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userOut struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Nickname *string `json:"nickname"`
}

func testLog() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestResponseItem(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Item(userOut{Username: "a", Email: "a@x.com"}).write(w, r, http.StatusOK, false, testLog())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"username":"a","email":"a@x.com","nickname":null}`, w.Body.String())
}

func TestResponseItemWithStatus(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	ItemWithStatus(userOut{Username: "a", Email: "a@x.com"}, http.StatusCreated).
		write(w, r, http.StatusOK, false, testLog())

	assert.Equal(t, http.StatusCreated, w.Code, "explicit status overrides the success status")
}

func TestResponseList(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	List(
		userOut{Username: "a", Email: "a@x.com"},
		userOut{Username: "b", Email: "b@x.com"},
	).write(w, r, http.StatusOK, true, testLog())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"username":"a","email":"a@x.com"},{"username":"b","email":"b@x.com"}]`, w.Body.String())
}

func TestResponseListRejectsInvalidSequences(t *testing.T) {
	tests := []struct {
		name  string
		items []any
	}{
		{name: "empty sequence", items: nil},
		{name: "nil element", items: []any{nil}},
		{
			name:  "heterogeneous elements",
			items: []any{userOut{Username: "a"}, "not a model"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			assert.PanicsWithError(t,
				(&InvalidModelListError{Items: tc.items}).Error(),
				func() {
					List(tc.items...).write(w, r, http.StatusOK, false, testLog())
				})
		})
	}
}

func TestMarshalItemExcludeEmpty(t *testing.T) {
	nickname := "al"
	withNickname := userOut{Username: "a", Email: "a@x.com", Nickname: &nickname}
	withoutNickname := userOut{Username: "a", Email: "a@x.com"}

	t.Run("null members are removed, present members kept", func(t *testing.T) {
		assert.JSONEq(t, `{"username":"a","email":"a@x.com"}`,
			string(marshalItem(withoutNickname, true)))
		assert.JSONEq(t, `{"username":"a","email":"a@x.com","nickname":"al"}`,
			string(marshalItem(withNickname, true)))
	})

	t.Run("disabled keeps null members", func(t *testing.T) {
		assert.JSONEq(t, `{"username":"a","email":"a@x.com","nickname":null}`,
			string(marshalItem(withoutNickname, false)))
	})

	t.Run("non-object values pass through", func(t *testing.T) {
		assert.Equal(t, `["a","b"]`, string(marshalItem([]string{"a", "b"}, true)))
	})
}

func TestMarshalItemIsDeterministic(t *testing.T) {
	item := userOut{Username: "a", Email: "a@x.com"}

	for _, excludeEmpty := range []bool{false, true} {
		first := marshalItem(item, excludeEmpty)
		second := marshalItem(item, excludeEmpty)
		require.Equal(t, first, second,
			"serializing the same value twice must be byte-identical (excludeEmpty=%v)", excludeEmpty)
	}
}
