package resthttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"login required"}`))
			return
		}

		_, _ = w.Write([]byte(`{"data":{"shares":1000}}`))
	}))
	defer srv.Close()

	ctx := context.Background()

	var resp struct {
		Shares uint64 `json:"shares"`
	}
	c := New(srv.URL, "token")
	require.NoError(t, c.Execute(c.Request(ctx), "post", "/vaults/1/deposit", map[string]string{"amount": "1"}, &resp))
	assert.Equal(t, uint64(1000), resp.Shares)

	anon := New(srv.URL, "")
	err := anon.Execute(anon.Request(ctx), "post", "/vaults/1/deposit", nil, &resp)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "login required", apiErr.Msg)
}
