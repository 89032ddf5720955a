// Package record persists probe outcomes: a CSV results sink, a
// human-readable sweep log, and one console line per URL. None of its
// failure modes abort a running batch.
package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ekrafft/url-check/internal/models"
)

var (
	okColor       = color.New(color.FgGreen)
	redirectColor = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	failColor     = color.New(color.FgRed, color.Bold)
)

// Recorder owns the two sink files for one batch. It is a single-writer
// resource: the batch runner is the only caller under the sequential model.
type Recorder struct {
	resultsPath string
	logPath     string
	insecure    bool

	console   io.Writer
	csvFile   *os.File
	csvWriter *csv.Writer
	logFile   *os.File
	sweepLog  zerolog.Logger
}

// NewRecorder opens (or creates) both sinks in append mode. The CSV header
// is written only when the results file is brand new, so re-running a sweep
// appends rows without duplicating it.
func NewRecorder(resultsPath, logPath string, insecure bool) (*Recorder, error) {
	for _, p := range []string{resultsPath, logPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("failed to create sink directory for %s: %w", p, err)
		}
	}

	csvFile, err := os.OpenFile(resultsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file %s: %w", resultsPath, err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		csvFile.Close()
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	r := &Recorder{
		resultsPath: resultsPath,
		logPath:     logPath,
		insecure:    insecure,
		console:     os.Stdout,
		csvFile:     csvFile,
		csvWriter:   csv.NewWriter(csvFile),
		logFile:     logFile,
		sweepLog:    newSweepLogger(logFile),
	}

	if err := r.writeHeaderOnce(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// newSweepLogger shapes zerolog output into the sweep-log line schema:
// "2006-01-02 15:04:05 [LEVEL] - Message".
func newSweepLogger(out *os.File) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: TimestampLayout,
		FormatLevel: func(i any) string {
			level, _ := i.(string)
			switch level {
			case "info":
				return "[INFO]"
			case "warn":
				return "[WARNING]"
			case "error":
				return "[ERROR]"
			default:
				return "[" + strings.ToUpper(level) + "]"
			}
		},
		FormatMessage: func(i any) string {
			if i == nil {
				return "-"
			}
			return fmt.Sprintf("- %s", i)
		},
	}

	return zerolog.New(writer).With().Timestamp().Logger()
}

func (r *Recorder) writeHeaderOnce() error {
	info, err := r.csvFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat results file: %w", err)
	}
	if info.Size() > 0 {
		return nil
	}

	r.csvWriter.Write(resultHeader)
	r.csvWriter.Flush()
	if err := r.csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	return nil
}

// Record persists one outcome to all three destinations. A sink write
// failure is reported on the console logger and otherwise swallowed:
// losing one row is preferable to losing the rest of the sweep.
func (r *Recorder) Record(o models.ProbeOutcome) {
	r.printConsole(o)

	r.csvWriter.Write(resultRow(o, r.insecure))
	r.csvWriter.Flush()
	if err := r.csvWriter.Error(); err != nil {
		log.Error().Err(err).Str("url", o.URL).Msg("failed to append result row")
	}

	r.logOutcome(o)
}

func (r *Recorder) printConsole(o models.ProbeOutcome) {
	label := o.Label()

	var painted string
	switch label {
	case "OK":
		painted = okColor.Sprint(label)
	case "REDIRECT":
		painted = redirectColor.Sprint(label)
	case "ERROR":
		painted = errorColor.Sprint(label)
	default:
		painted = failColor.Sprint(label)
	}

	if o.Failed() && o.StatusCode == 0 {
		fmt.Fprintf(r.console, "%s %s - %s - %s (%s ms)\n", painted, o.URL, statusCell(o), o.ErrMessage, elapsedCell(o))
		return
	}
	fmt.Fprintf(r.console, "%s %s - %s (%s ms)\n", painted, o.URL, o.StatusText, elapsedCell(o))
}

func (r *Recorder) logOutcome(o models.ProbeOutcome) {
	switch {
	case o.Failed():
		r.sweepLog.Error().Msgf("%s - %s - %s ms", o.URL, o.ErrMessage, elapsedCell(o))
	case o.Succeeded() || o.Redirected():
		r.sweepLog.Info().Msgf("%s - %s - %s ms", o.URL, o.StatusText, elapsedCell(o))
	default:
		r.sweepLog.Warn().Msgf("%s - %s - %s ms", o.URL, o.StatusText, elapsedCell(o))
	}
}

// LogStart writes the fixed batch-start line.
func (r *Recorder) LogStart(total int, method string) {
	r.sweepLog.Info().Msgf("Starting URL check: %d targets, method %s", total, method)
}

// LogSummary writes the fixed batch-end line.
func (r *Recorder) LogSummary(s models.BatchSummary) {
	r.sweepLog.Info().Msgf("Check complete: %d processed, %d succeeded, %d failed", s.Total, s.Succeeded, s.Failed)
}

// LogFatal records a pre-loop fatal condition in the sweep log.
func (r *Recorder) LogFatal(msg string) {
	r.sweepLog.Error().Msg(msg)
}

func (r *Recorder) ResultsPath() string { return r.resultsPath }
func (r *Recorder) LogPath() string     { return r.logPath }

func (r *Recorder) Close() {
	r.csvWriter.Flush()
	r.csvFile.Close()
	r.logFile.Close()
}
