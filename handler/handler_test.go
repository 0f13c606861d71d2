package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Meciahacks/mindful-reach-clinic-01260/handler"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/binder"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/environment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct {
	Name string `json:"name"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds request and renders JSON", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			return handler.JSON(map[string]string{"hello": req.Name}, handler.WithJSONStatus(http.StatusCreated))
		}, handler.WithBinder[pingRequest](binder.JSON()))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Jane", decode(t, rec)["hello"])
	})

	t.Run("binder failure skips handler", func(t *testing.T) {
		t.Parallel()

		called := false
		var gotErr error
		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			called = true
			return handler.Empty()
		},
			handler.WithBinder[pingRequest](binder.JSON()),
			handler.WithErrorHandler[pingRequest](func(ctx handler.Context, err error) {
				gotErr = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.ErrorIs(t, gotErr, binder.ErrFailedToParseJSON)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("binders run in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		first := func(r *http.Request, v any) error { order = append(order, "first"); return nil }
		second := func(r *http.Request, v any) error { order = append(order, "second"); return nil }

		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			return handler.Empty()
		}, handler.WithBinder[pingRequest](first), handler.WithBinder[pingRequest](second))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("nil response reaches default error handler", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decode(t, rec)["error"])
	})

	t.Run("panic becomes 500 JSON", func(t *testing.T) {
		t.Parallel()

		var gotErr error
		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			panic("template exploded")
		}, handler.WithErrorHandler[pingRequest](func(ctx handler.Context, err error) {
			gotErr = err
			handler.NewErrorHandler(nil)(ctx, err)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.ErrorIs(t, gotErr, handler.ErrPanic)
		assert.Contains(t, gotErr.Error(), "template exploded")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decode(t, rec)["error"])
	})

	t.Run("context exposes request values", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(ctx handler.Context, req pingRequest) handler.Response {
			assert.Equal(t, "/ctx", ctx.Request().URL.Path)
			assert.NoError(t, ctx.Err())
			return handler.EmptyWithStatus(http.StatusAccepted)
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ctx", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{"http error keeps code and key", handler.NewHTTPError(http.StatusBadRequest, "Invalid request body", nil), http.StatusBadRequest, "Invalid request body"},
		{"wrapped http error", errors.Join(errors.New("ctx"), handler.NewHTTPError(http.StatusNotFound, "", nil)), http.StatusNotFound, "Not Found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
			handler.NewErrorHandler(nil)(handler.NewContext(rec, req), tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantKey, decode(t, rec)["error"])
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := handler.NewHTTPError(http.StatusBadRequest, "Missing required fields", cause)

	assert.Equal(t, "Missing required fields", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.JSONError(http.StatusInternalServerError, "Failed to process submission", "smtp down").
		Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to process submission", body["error"])
	assert.Equal(t, "smtp down", body["message"])
}

func TestNewErrorHandler_DevelopmentDetail(t *testing.T) {
	t.Parallel()

	run := func(env environment.Environment) map[string]any {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(environment.WithContext(req.Context(), env))
		handler.NewErrorHandler(nil)(handler.NewContext(rec, req), errors.New("db exploded"))
		return decode(t, rec)
	}

	assert.Equal(t, "db exploded", run(environment.Development)["message"])
	assert.NotContains(t, run(environment.Production), "message")
}
