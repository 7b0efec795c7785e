package crm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynamicform/crm"
)

func TestClientRoundtrip(t *testing.T) {
	var gotAuth, gotMethod, gotPath, gotQuery string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "c1"},
			"message": "ok",
		})
	}))
	defer server.Close()

	client := crm.NewClient(server.URL, crm.WithTokenSource(func() string { return "tok123" }))

	envelope, err := client.Get(context.Background(), "/customers", url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Message)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "/customers", gotPath)
	assert.Equal(t, "page=2", gotQuery)

	var data map[string]string
	require.NoError(t, envelope.DecodeData(&data))
	assert.Equal(t, "c1", data["id"])

	_, err = client.Post(context.Background(), "/customers", map[string]any{"firstName": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Ada", gotBody["firstName"])
}

func TestClientErrorStatusSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "customer not found"})
	}))
	defer server.Close()

	client := crm.NewClient(server.URL)
	envelope, err := client.Delete(context.Background(), "/customers/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer not found")
	require.NotNil(t, envelope)
	assert.False(t, envelope.Success)
}

func TestClientNoTokenLeavesRequestBare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	_, err := crm.NewClient(server.URL).Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
}
