// Package net issues the HTTP probes. Every failure mode is folded into a
// ProbeOutcome; nothing escapes the executor as an error.
package net

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ekrafft/url-check/internal/models"
)

const (
	// Identifying agent string sent with every probe.
	UserAgent = "url-check/1.3"

	// POST probes carry a small fixed body so form endpoints have
	// something to accept. It has no semantic payload.
	postBody        = "check=true"
	postContentType = "application/x-www-form-urlencoded"
)

type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

// Probe performs exactly one request for req and returns the normalized
// outcome. The timer starts before dispatch and is stopped on every exit
// path, so ElapsedMs is populated even for timeouts and transport errors.
func (p *Prober) Probe(req models.ProbeRequest) models.ProbeOutcome {
	client := &http.Client{
		Timeout: req.Timeout,

		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: req.InsecureTLS},
		},

		// Redirects are classified, not chased.
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	defer client.CloseIdleConnections()

	outcome := models.ProbeOutcome{
		URL:    req.URL,
		Method: req.Method,
	}

	start := time.Now()

	var body *strings.Reader
	if req.Method == http.MethodPost {
		body = strings.NewReader(postBody)
	}

	httpReq, err := newRequest(req.Method, req.URL, body)
	if err != nil {
		outcome.ElapsedMs = elapsedMs(start)
		outcome.ErrMessage = err.Error()
		outcome.CheckedAt = time.Now()
		return outcome
	}

	resp, err := client.Do(httpReq)
	outcome.ElapsedMs = elapsedMs(start)
	outcome.CheckedAt = time.Now()

	if err != nil {
		outcome.ErrMessage = describeFailure(err, req.Timeout)
		// A partial response still carries a usable status code.
		if resp != nil {
			outcome.StatusCode = resp.StatusCode
			outcome.StatusText = resp.Status
			resp.Body.Close()
		}
		return outcome
	}

	// Headers only; the body is never read.
	resp.Body.Close()

	outcome.StatusCode = resp.StatusCode
	outcome.StatusText = resp.Status
	return outcome
}

func newRequest(method, target string, body *strings.Reader) (*http.Request, error) {
	var req *http.Request
	var err error

	if body != nil {
		req, err = http.NewRequest(method, target, body)
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", postContentType)
	}

	return req, nil
}

func describeFailure(err error, timeout time.Duration) string {
	if os.IsTimeout(err) {
		return fmt.Sprintf("timeout after %s: %v", timeout, err)
	}
	return err.Error()
}

func elapsedMs(start time.Time) float64 {
	return time.Since(start).Seconds() * 1000
}
