package httpsend_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sociallogin/pkg/httpsend"
	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

func tokenRequest(endpoint string) *oauth.Request {
	req := oauth.NewRequest(http.MethodPost, endpoint)
	req.Params.Add(oauth.ParamClientID, "abc")
	req.Params.Add(oauth.ParamClientSecret, "s3cr3t")
	req.Params.Add(oauth.ParamCode, "xyz")
	return req
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	t.Run("sends params in query with empty body", func(t *testing.T) {
		t.Parallel()

		var gotMethod, gotQuery, gotAccept string
		var gotBodyLen int64 = -1
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotQuery = r.URL.RawQuery
			gotAccept = r.Header.Get("Accept")
			gotBodyLen = r.ContentLength
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"T"}`))
		}))
		defer srv.Close()

		req := tokenRequest(srv.URL)
		req.Header.Set("Accept", "application/json")

		resp, err := httpsend.New().Send(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"access_token":"T"}`, string(resp.Body))
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "client_id=abc&client_secret=s3cr3t&code=xyz", gotQuery)
		assert.Equal(t, "application/json", gotAccept)
		assert.Zero(t, gotBodyLen)
	})

	t.Run("non-2xx is returned as response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		resp, err := httpsend.New().Send(context.Background(), tokenRequest(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, resp.IsSuccess())
		assert.Contains(t, string(resp.Body), "invalid_grant")
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		resp, err := httpsend.New().Send(context.Background(), nil)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, httpsend.ErrNilRequest)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		resp, err := httpsend.New().Send(context.Background(), tokenRequest(url))
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client_secret=REDACTED")
		assert.NotContains(t, err.Error(), "s3cr3t")
		assert.NotContains(t, err.Error(), "code=xyz")
	})

	t.Run("body over limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		defer srv.Close()

		resp, err := httpsend.New(httpsend.WithMaxBodyBytes(16)).Send(context.Background(), tokenRequest(srv.URL))
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, httpsend.ErrBodyTooLarge)
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := httpsend.New().Send(ctx, tokenRequest(srv.URL))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClient_CircuitBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := httpsend.New(httpsend.WithBreaker(2, time.Minute))

	for range 2 {
		resp, err := client.Send(context.Background(), tokenRequest(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	}

	resp, err := client.Send(context.Background(), tokenRequest(srv.URL))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, httpsend.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ClientErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := httpsend.New(httpsend.WithBreaker(1, time.Minute))
	for range 3 {
		resp, err := client.Send(context.Background(), tokenRequest(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestClient_LogsRedactedURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-value"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := httpsend.New(httpsend.WithLogger(log)).Send(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "provider request completed")
	assert.Contains(t, out, "client_id=abc")
	assert.NotContains(t, out, "s3cr3t")
	assert.NotContains(t, out, "code=xyz")
	assert.NotContains(t, out, "tok-value")
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := httpsend.NewMetrics("test")
	require.NoError(t, metrics.Register(reg))

	client := httpsend.New(httpsend.WithMetrics(metrics))
	for range 3 {
		_, err := client.Send(context.Background(), tokenRequest(srv.URL))
		require.NoError(t, err)
	}

	got := counterValue(t, reg, "test_oauth_outbound_requests_total", map[string]string{
		"method": http.MethodPost,
		"status": "200",
	})
	assert.Equal(t, float64(3), got)
}

func TestMetrics_RegisterTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, httpsend.NewMetrics("test").Register(reg))

	second := httpsend.NewMetrics("test")
	require.NoError(t, second.Register(reg))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := httpsend.New(httpsend.WithMetrics(second)).Send(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)

	got := counterValue(t, reg, "test_oauth_outbound_requests_total", map[string]string{"status": "204"})
	assert.Equal(t, float64(1), got)
}

func TestWithHTTPClient_LeavesCallerClientUntouched(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hc := &http.Client{}
	client := httpsend.New(httpsend.WithHTTPClient(hc), httpsend.WithTimeout(3*time.Second))

	_, err := client.Send(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)
	assert.Zero(t, hc.Timeout)
}

func TestMetrics_CountsRejectedRequests(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := httpsend.NewMetrics("test")
	require.NoError(t, metrics.Register(reg))

	client := httpsend.New(httpsend.WithBreaker(1, time.Minute), httpsend.WithMetrics(metrics))

	resp, err := client.Send(context.Background(), tokenRequest(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	for range 2 {
		_, err = client.Send(context.Background(), tokenRequest(srv.URL))
		require.ErrorIs(t, err, httpsend.ErrCircuitOpen)
	}

	assert.Equal(t, float64(1), counterValue(t, reg, "test_oauth_outbound_requests_total", map[string]string{
		"method": http.MethodPost,
		"status": "503",
	}))
	assert.Equal(t, float64(2), counterValue(t, reg, "test_oauth_outbound_requests_total", map[string]string{
		"method": http.MethodPost,
		"status": "error",
	}))
}
