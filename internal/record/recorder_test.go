package record

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekrafft/url-check/internal/models"
)

var logLinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[(INFO|WARNING|ERROR)\] - .+$`)

func sinkPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "results.csv"), filepath.Join(dir, "check.log")
}

func outcome(url string, status int, errMsg string) models.ProbeOutcome {
	o := models.ProbeOutcome{
		URL:        url,
		Method:     "GET",
		StatusCode: status,
		ElapsedMs:  123.456,
		ErrMessage: errMsg,
		CheckedAt:  time.Now(),
	}
	if status != 0 {
		o.StatusText = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return o
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open results: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse results: %v", err)
	}
	return records
}

func TestRecorderWritesHeaderAndRows(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)

	r.Record(outcome("https://a.example", 200, ""))
	r.Record(outcome("https://b.example", 0, "connection refused"))
	r.Record(outcome("https://c.example", 301, ""))
	r.Close()

	records := readCSV(t, results)
	assert.Len(t, records, 4)
	assert.Equal(t, resultHeader, records[0])

	assert.Equal(t, "200", records[1][3])
	assert.Equal(t, "123.46", records[1][5])
	assert.Equal(t, "", records[1][6])

	assert.Equal(t, "N/A", records[2][3])
	assert.Equal(t, "Error", records[2][4])
	assert.Equal(t, "connection refused", records[2][6])
}

func TestRecorderAppendDoesNotDuplicateHeader(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)
	r.Record(outcome("https://a.example", 200, ""))
	r.Close()

	r, err = NewRecorder(results, logPath, false)
	assert.NoError(t, err)
	r.Record(outcome("https://b.example", 200, ""))
	r.Close()

	records := readCSV(t, results)
	assert.Len(t, records, 3)
	assert.Equal(t, resultHeader, records[0])
	assert.NotEqual(t, resultHeader, records[1])
	assert.NotEqual(t, resultHeader, records[2])
}

func TestRecorderPersistsCertModePerRow(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, true)
	assert.NoError(t, err)
	r.Record(outcome("https://a.example", 200, ""))
	r.Close()

	records := readCSV(t, results)
	assert.Equal(t, "true", records[1][7])
}

func TestConsoleLineUsesPlaceholderForAbsentStatus(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)
	defer r.Close()

	var console bytes.Buffer
	r.console = &console

	r.Record(outcome("https://down.example", 0, "connection refused"))
	r.Record(outcome("https://ok.example", 200, ""))

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "https://down.example - N/A - connection refused")
	assert.Contains(t, lines[0], "(123.46 ms)")
	assert.Contains(t, lines[1], "https://ok.example - 200 OK")
}

func TestRecordSurvivesSinkWriteFailure(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)
	r.console = io.Discard

	// An unwritable results file must cost at most the affected rows.
	assert.NoError(t, r.csvFile.Close())

	assert.NotPanics(t, func() {
		r.Record(outcome("https://a.example", 200, ""))
		r.Record(outcome("https://b.example", 0, "no such host"))
	})

	data, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "https://a.example")
	assert.Contains(t, lines[1], "https://b.example")

	r.logFile.Close()
}

func TestSweepLogLineSchema(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)

	r.LogStart(3, "GET")
	r.Record(outcome("https://ok.example", 200, ""))
	r.Record(outcome("https://bad.example", 404, ""))
	r.Record(outcome("https://down.example", 0, "no such host"))
	r.LogSummary(models.BatchSummary{Total: 3, Succeeded: 1, Failed: 2})
	r.Close()

	data, err := os.ReadFile(logPath)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Regexp(t, logLinePattern, line)
	}

	assert.Contains(t, lines[0], "[INFO]")
	assert.Contains(t, lines[2], "[WARNING]")
	assert.Contains(t, lines[3], "[ERROR]")
}

func TestReadResultsRoundTrip(t *testing.T) {
	results, logPath := sinkPaths(t)

	r, err := NewRecorder(results, logPath, false)
	assert.NoError(t, err)
	r.Record(outcome("https://a.example", 200, ""))
	r.Record(outcome("https://b.example", 0, "timeout after 30s"))
	r.Close()

	rows, err := ReadResults(results)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "https://a.example", rows[0].URL)
	if assert.NotNil(t, rows[0].StatusCode) {
		assert.Equal(t, 200, *rows[0].StatusCode)
	}
	if assert.NotNil(t, rows[0].ResponseTimeMs) {
		assert.InDelta(t, 123.46, *rows[0].ResponseTimeMs, 0.01)
	}

	assert.Nil(t, rows[1].StatusCode)
	assert.Equal(t, "timeout after 30s", rows[1].ErrorMessage)
}

func TestReadResultsMissingFile(t *testing.T) {
	_, err := ReadResults(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
