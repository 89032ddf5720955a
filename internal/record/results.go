package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ekrafft/url-check/internal/models"
)

// TimestampLayout is the timestamp format shared by the CSV sink and the
// sweep log.
const TimestampLayout = "2006-01-02 15:04:05"

// Placeholder serialized for absent status codes and response times.
const absentCell = "N/A"

// resultHeader is the CSV schema, written exactly once when the sink file
// is created. Column order is stable across runs; report and serve read it
// back with parseRow.
var resultHeader = []string{
	"Timestamp",
	"URL",
	"Method",
	"StatusCode",
	"StatusDescription",
	"ResponseTimeMs",
	"ErrorMessage",
	"IgnoreCertErrors",
}

// Row is one recorded outcome as read back from the CSV sink. Absent
// status and timing are nil so JSON consumers see null, not zero.
type Row struct {
	Timestamp         string   `json:"timestamp"`
	URL               string   `json:"url"`
	Method            string   `json:"method"`
	StatusCode        *int     `json:"status_code"`
	StatusDescription string   `json:"status_description,omitempty"`
	ResponseTimeMs    *float64 `json:"response_time_ms"`
	ErrorMessage      string   `json:"error_message,omitempty"`
	IgnoreCertErrors  bool     `json:"ignore_cert_errors"`
}

func resultRow(o models.ProbeOutcome, insecure bool) []string {
	return []string{
		o.CheckedAt.Format(TimestampLayout),
		o.URL,
		o.Method,
		statusCell(o),
		o.Description(),
		elapsedCell(o),
		o.ErrMessage,
		strconv.FormatBool(insecure),
	}
}

func statusCell(o models.ProbeOutcome) string {
	if o.StatusCode == 0 {
		return absentCell
	}
	return strconv.Itoa(o.StatusCode)
}

func elapsedCell(o models.ProbeOutcome) string {
	if o.ElapsedMs < 0 {
		return absentCell
	}
	return strconv.FormatFloat(o.ElapsedMs, 'f', 2, 64)
}

// ReadResults loads every data row from the CSV sink at path, in recorded
// order.
func ReadResults(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == resultHeader[0] {
			continue
		}
		if len(rec) != len(resultHeader) {
			return nil, fmt.Errorf("malformed row %d in %s: %d columns", i+1, path, len(rec))
		}
		rows = append(rows, parseRow(rec))
	}

	return rows, nil
}

func parseRow(rec []string) Row {
	row := Row{
		Timestamp:         rec[0],
		URL:               rec[1],
		Method:            rec[2],
		StatusDescription: rec[4],
		ErrorMessage:      rec[6],
	}

	if rec[3] != absentCell {
		if code, err := strconv.Atoi(rec[3]); err == nil {
			row.StatusCode = &code
		}
	}
	if rec[5] != absentCell {
		if ms, err := strconv.ParseFloat(rec[5], 64); err == nil {
			row.ResponseTimeMs = &ms
		}
	}
	row.IgnoreCertErrors, _ = strconv.ParseBool(rec[7])

	return row
}
