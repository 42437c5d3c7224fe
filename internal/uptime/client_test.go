package uptime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient("u-test-key", server.URL+"/v2", 2*time.Second, nil)
}

func TestRegisterMonitorSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/newMonitor", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "u-test-key", r.PostForm.Get("api_key"))
		assert.Equal(t, "1", r.PostForm.Get("type"))
		assert.Equal(t, "https://acme.example", r.PostForm.Get("url"))
		assert.Equal(t, "Acme", r.PostForm.Get("friendly_name"))

		_, _ = w.Write([]byte(`{"stat":"ok","monitor":{"id":777810874,"status":1}}`))
	})

	id, err := client.RegisterMonitor(context.Background(), "https://acme.example", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "777810874", id)
}

func TestRegisterMonitorFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"api error": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"stat":"fail","error":{"type":"invalid_parameter","message":"url is invalid"}}`))
		},
		"missing id": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"stat":"ok","monitor":{}}`))
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			id, err := newTestClient(t, handler).RegisterMonitor(context.Background(), "https://acme.example", "Acme")
			require.Error(t, err)
			assert.Empty(t, id)
			assert.False(t, errors.Is(err, ErrDisabled))
		})
	}
}

func TestRegisterMonitorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"stat":"ok","monitor":{"id":1}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient("key", server.URL, 20*time.Millisecond, nil)
	_, err := client.RegisterMonitor(context.Background(), "https://acme.example", "Acme")
	require.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	client := NewClient("  ", "http://127.0.0.1:1", time.Second, nil)
	assert.False(t, client.Enabled())

	_, err := client.RegisterMonitor(context.Background(), "https://acme.example", "Acme")
	assert.ErrorIs(t, err, ErrDisabled)

	monitors, err := client.ListMonitors(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, monitors)
}

func TestListMonitors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/getMonitors", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "30", r.PostForm.Get("custom_uptime_ratios"))

		_, _ = w.Write([]byte(`{
			"stat": "ok",
			"monitors": [
				{"id": 1, "friendly_name": "Acme", "url": "https://acme.example", "status": 2,
				 "custom_uptime_ratio": "99.912", "response_times": [{"value": 120}, {"value": 98}]},
				{"id": 2, "friendly_name": "Globex", "url": "https://globex.example", "status": 9,
				 "custom_uptime_ratio": ""}
			]
		}`))
	})

	monitors, err := client.ListMonitors(context.Background())
	require.NoError(t, err)
	require.Len(t, monitors, 2)

	require.NotNil(t, monitors[0].UptimeRatio)
	assert.InDelta(t, 99.912, *monitors[0].UptimeRatio, 1e-9)
	assert.Equal(t, int64(1), monitors[0].ID)
	assert.Equal(t, "Acme", monitors[0].Name)
	assert.Equal(t, "https://acme.example", monitors[0].URL)
	assert.Equal(t, 2, monitors[0].Status)
	assert.Equal(t, []int{120, 98}, monitors[0].ResponseTimes)
	assert.Nil(t, monitors[1].UptimeRatio)
	assert.Empty(t, monitors[1].ResponseTimes)
}
