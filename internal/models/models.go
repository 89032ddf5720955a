package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Probe methods accepted by the executor. Anything else is rejected at
// configuration time, before the batch starts.
var allowedMethods = map[string]bool{
	http.MethodGet:  true,
	http.MethodHead: true,
	http.MethodPost: true,
}

func ValidMethod(method string) bool {
	return allowedMethods[method]
}

// ProbeRequest is the per-call probe configuration. One template is built
// from the settings at startup; only the URL changes between iterations.
type ProbeRequest struct {
	URL         string
	Method      string
	Timeout     time.Duration
	InsecureTLS bool
}

// WithURL returns a copy of the template pointed at a new target.
func (r ProbeRequest) WithURL(url string) ProbeRequest {
	r.URL = url
	return r
}

// ProbeOutcome is the normalized result of a single probe. It is created
// once by the executor and never mutated afterwards. StatusCode 0 means no
// status was obtained; ErrMessage is empty unless the transport failed.
type ProbeOutcome struct {
	URL        string
	Method     string
	StatusCode int
	StatusText string
	ElapsedMs  float64
	ErrMessage string
	CheckedAt  time.Time
}

func (o ProbeOutcome) Succeeded() bool {
	return o.StatusCode >= 200 && o.StatusCode < 300
}

func (o ProbeOutcome) Redirected() bool {
	return o.StatusCode >= 300 && o.StatusCode < 400
}

// Failed reports a transport-level failure. An HTTP error status (4xx, 5xx)
// is a normal outcome, not a failure.
func (o ProbeOutcome) Failed() bool {
	return o.ErrMessage != ""
}

// Label is the console classification prefix. Purely range-based on the
// status code; FAIL means no status was obtained at all.
func (o ProbeOutcome) Label() string {
	switch {
	case o.Succeeded():
		return "OK"
	case o.Redirected():
		return "REDIRECT"
	case o.StatusCode != 0:
		return "ERROR"
	default:
		return "FAIL"
	}
}

// Description is the serialized status text: the protocol's reason phrase
// when one was received, "Error" for transport failures.
func (o ProbeOutcome) Description() string {
	if o.StatusText != "" {
		return o.StatusText
	}
	if o.Failed() {
		return "Error"
	}
	return ""
}

// BatchSummary is the running tally for one sweep. Add returns the updated
// value so the runner can fold over outcomes without shared mutable state.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

func (s BatchSummary) Add(o ProbeOutcome) BatchSummary {
	s.Total++
	if o.Succeeded() {
		s.Succeeded++
	} else {
		s.Failed++
	}
	return s
}

// Response is the JSON envelope used by CLI and API output.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (r Response) Print() {
	data, err := json.Marshal(r)

	if err != nil {
		log.Error().Err(err).Msg("error serializing response")
		return
	}

	fmt.Println(string(data))
}
