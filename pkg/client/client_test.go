package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", nil)
	require.Error(t, err)
	c, err := New("http://localhost:5000/", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.baseURL)
}

func TestTokenIsSentPerCall(t *testing.T) {
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"No token, authorization denied"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.ListMessages(ctx, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Contains(t, err.Error(), "No token, authorization denied")

	msgs, err := c.ListMessages(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Equal(t, []string{"", "Bearer abc"}, seen)
}

func TestErrorWithoutBodyUsesStatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	_, err = c.GetPortfolio(context.Background(), "x")
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Contains(t, err.Error(), "Bad Gateway")
	assert.Equal(t, 0, StatusOf(nil))
}
