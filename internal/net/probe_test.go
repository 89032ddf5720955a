package net

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekrafft/url-check/internal/models"
)

func request(url string) models.ProbeRequest {
	return models.ProbeRequest{
		URL:     url,
		Method:  http.MethodGet,
		Timeout: 5 * time.Second,
	}
}

func TestProbeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	outcome := NewProber().Probe(request(server.URL))

	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.NotEmpty(t, outcome.StatusText)
	assert.Empty(t, outcome.ErrMessage)
	assert.GreaterOrEqual(t, outcome.ElapsedMs, 0.0)
	assert.False(t, outcome.CheckedAt.IsZero())
}

func TestProbeBadStatusIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	outcome := NewProber().Probe(request(server.URL))

	assert.Equal(t, http.StatusServiceUnavailable, outcome.StatusCode)
	assert.Empty(t, outcome.ErrMessage)
	assert.False(t, outcome.Failed())
	assert.Equal(t, "ERROR", outcome.Label())
}

func TestProbeRedirectNotFollowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer server.Close()

	outcome := NewProber().Probe(request(server.URL))

	assert.Equal(t, http.StatusMovedPermanently, outcome.StatusCode)
	assert.Equal(t, "REDIRECT", outcome.Label())
	assert.Empty(t, outcome.ErrMessage)
}

func TestProbePostBody(t *testing.T) {
	var gotBody string
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := request(server.URL)
	req.Method = http.MethodPost
	outcome := NewProber().Probe(req)

	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.Equal(t, "check=true", gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
}

func TestProbeHead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req := request(server.URL)
	req.Method = http.MethodHead
	outcome := NewProber().Probe(req)

	assert.Equal(t, http.StatusNoContent, outcome.StatusCode)
	assert.True(t, outcome.Succeeded())
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := request(server.URL)
	req.Timeout = 50 * time.Millisecond
	outcome := NewProber().Probe(req)

	assert.Zero(t, outcome.StatusCode)
	assert.Contains(t, outcome.ErrMessage, "timeout")
	assert.GreaterOrEqual(t, outcome.ElapsedMs, 45.0)
	assert.Equal(t, "FAIL", outcome.Label())
}

func TestProbeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	outcome := NewProber().Probe(request(url))

	assert.Zero(t, outcome.StatusCode)
	assert.NotEmpty(t, outcome.ErrMessage)
	assert.GreaterOrEqual(t, outcome.ElapsedMs, 0.0)
}

func TestProbeInvalidURL(t *testing.T) {
	outcome := NewProber().Probe(request("https://exa mple.com"))

	assert.Zero(t, outcome.StatusCode)
	assert.NotEmpty(t, outcome.ErrMessage)
	assert.GreaterOrEqual(t, outcome.ElapsedMs, 0.0)
}

func TestProbeInsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Strict validation must reject the self-signed test certificate.
	outcome := NewProber().Probe(request(server.URL))

	assert.NotEmpty(t, outcome.ErrMessage)
	assert.Zero(t, outcome.StatusCode)

	bypass := request(server.URL)
	bypass.InsecureTLS = true
	outcome = NewProber().Probe(bypass)

	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.Empty(t, outcome.ErrMessage)
}
