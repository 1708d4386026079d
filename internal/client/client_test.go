package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/client"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

func newServer(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", "secret-token", 2*time.Second, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPIErrorDecoding(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			"Validation payload",
			http.StatusBadRequest,
			`{"title":"One or more validation errors occurred.","errors":{"cpf":["must have 11 digits"]}}`,
			"One or more validation errors occurred.: cpf must have 11 digits",
		},
		{"Message payload", http.StatusConflict, `{"message":"could not create client: duplicated unique value"}`, "could not create client: duplicated unique value"},
		{"Plain text body", http.StatusBadGateway, "upstream down", "upstream down"},
		{"Empty body", http.StatusInternalServerError, "", "api returned 500 Internal Server Error"},
		{
			"HTML error page",
			http.StatusBadGateway,
			"<html><head><title>502 Bad Gateway</title></head><body><h1>502 Bad Gateway</h1></body></html>",
			"api returned 502 Bad Gateway",
		},
		{"Long text body", http.StatusServiceUnavailable, strings.Repeat("x", 5000), "api returned 503 Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Clients().Get(context.Background(), 1)
			var apiErr *client.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.expected, resolver.ErrorMessage(err))
		})
	}
}

func TestResourceRequests(t *testing.T) {
	var got *http.Request
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		switch {
		case r.URL.Path == "/clients/by-cpf/00000000000":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "client not found"})
		case r.URL.Path == "/clients/by-cpf/11122233344":
			writeJSON(w, http.StatusOK, models.Client{ID: 3, CPF: "11122233344"})
		case r.URL.Path == "/clients/search-by-name":
			writeJSON(w, http.StatusOK, []models.Client{{ID: 1}, {ID: 2}})
		case r.URL.Path == "/clients" && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, models.NewPage([]models.Client{{ID: 4}}, 1, 1, 3))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost:
			var in models.Client
			_ = json.NewDecoder(r.Body).Decode(&in)
			in.ID = 9
			writeJSON(w, http.StatusCreated, in)
		}
	})
	ctx := context.Background()

	t.Run("FindOne turns 404 into no rows", func(t *testing.T) {
		rows, err := c.Clients().FindOne(ctx, "/by-cpf/00000000000")
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = c.Clients().FindOne(ctx, "/by-cpf/11122233344")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 3, rows[0].ID)
	})

	t.Run("Find sends the query", func(t *testing.T) {
		rows, err := c.Clients().Find(ctx, "/search-by-name", url.Values{"name": {"Ana Maria"}})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Ana Maria", got.URL.Query().Get("name"))
		assert.Equal(t, "Bearer secret-token", got.Header.Get("Authorization"))
	})

	t.Run("Page decodes page metadata", func(t *testing.T) {
		page, err := c.Clients().Page(ctx, url.Values{"page": {"1"}, "size": {"1"}})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalPages)
		assert.False(t, page.First)
		assert.False(t, page.Last)
	})

	t.Run("Create and delete", func(t *testing.T) {
		created, err := c.Clients().Create(ctx, models.Client{Name: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, 9, created.ID)
		assert.Equal(t, "application/json", got.Header.Get("Content-Type"))

		require.NoError(t, c.Clients().Delete(ctx, 9))
		assert.Equal(t, "/clients/9", got.URL.Path)
	})
}

func TestLogin(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": "jwt"})
	})

	token, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)

	_, err = c.Login(context.Background(), "admin", "nope")
	assert.Equal(t, "invalid credentials", resolver.ErrorMessage(err))
}

func TestTransportErrorsKeepTheirText(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := client.New(srv.URL, "", time.Second, nil)
	_, err := c.Yards().All(context.Background())
	require.Error(t, err)
	assert.False(t, client.IsNotFound(err))
	assert.NotEmpty(t, resolver.ErrorMessage(err))
}
