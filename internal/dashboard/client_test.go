package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAcceptsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leaders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"a1","name":"Awa"},{"id":"a2","name":"Lamin"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	records, err := client.List(context.Background(), KindLeaders)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].ID())
	assert.Equal(t, "Lamin", records[1].Str("name"))
}

func TestListAcceptsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"e1","title":"Fair"}]`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	records, err := client.List(context.Background(), KindEvents)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fair", records[0].Str("title"))
}

func TestErrorResponsesCarryDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required fields: title","details":{"title":"required"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Create(context.Background(), KindBlogs, map[string]any{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields: title", apiErr.Message)
	assert.Equal(t, "required", apiErr.Details["title"])
}

func TestLoginCookieCarriesToLaterRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-token", Path: "/"})
			w.Write([]byte(`{"data":{"message":"Login successful"}}`))
		case "/api/news":
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value != "session-token" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "n1"}})
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	require.NoError(t, client.Login(context.Background(), "admin@utg.example", "pw"))

	record, err := client.Create(context.Background(), KindNews, map[string]any{"title": "t"})
	require.NoError(t, err)
	assert.Equal(t, "n1", record.ID())
}
