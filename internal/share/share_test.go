package share

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharePostsStatusWithToken(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotBody   []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "secret-token")
	require.NoError(t, client.Share(context.Background()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer secret-token", gotAuth)

	var payload struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Contains(t, payload.Text, "Daily update for ")
}

func TestShareReportsWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "")
	assert.Error(t, client.Share(context.Background()))
}

func TestShareReportsTransportFailure(t *testing.T) {
	client := New("http://127.0.0.1:1", "")
	assert.Error(t, client.Share(context.Background()))
}
