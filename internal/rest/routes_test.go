package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/daniilsolovey/news-cms/docs"
)

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	e := Router{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}.Echo()

	t.Run("Health", func(t *testing.T) {
		rec := serve(e, http.MethodGet, healthPath, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("RequestIDKept", func(t *testing.T) {
		rec := serve(e, http.MethodGet, healthPath, http.Header{echo.HeaderXRequestID: {"req-42"}})
		assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := serve(e, http.MethodGet, metricsPath, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})

	t.Run("Swagger", func(t *testing.T) {
		rec := serve(e, http.MethodGet, swaggerPath, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc struct {
			Info struct {
				Title string `json:"title"`
			} `json:"info"`
			Paths map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "News CMS API", doc.Info.Title)
		assert.Contains(t, doc.Paths, "/v1/homepage")
		assert.Contains(t, doc.Paths, "/auth/login")
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/v2/nothing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
	})
}

func TestRouter_RequireAuth(t *testing.T) {
	e := Router{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}.Echo()

	tests := []struct {
		method string
		target string
		header http.Header
	}{
		{http.MethodPost, "/v1/articles", nil},
		{http.MethodPut, "/v1/articles/1", nil},
		{http.MethodDelete, "/v1/categories/1", nil},
		{http.MethodPost, "/v1/tags", http.Header{"Authorization": {"Basic dXNlcjpwYXNz"}}},
		{http.MethodPost, "/auth/logout", nil},
		{http.MethodGet, "/auth/user", http.Header{"Authorization": {"Bearer"}}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Unauthenticated."}`, rec.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def", "abc.def"},
		{"bearer   abc", "abc"},
		{"Basic abc", ""},
		{"Bearer ", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, tt.header)
		assert.Equal(t, tt.want, bearerToken(req), "header %q", tt.header)
	}
}
