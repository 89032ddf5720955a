// Package sweep drives one batch: every URL probed in file order, every
// outcome recorded before the next probe starts.
package sweep

import (
	"context"

	"github.com/schollz/progressbar/v3"

	"github.com/ekrafft/url-check/internal/models"
)

// Prober issues a single probe. Implemented by net.Prober; stubbed in tests.
type Prober interface {
	Probe(req models.ProbeRequest) models.ProbeOutcome
}

// Sink receives every outcome plus the fixed start/end log lines.
// Implemented by record.Recorder.
type Sink interface {
	Record(o models.ProbeOutcome)
	LogStart(total int, method string)
	LogSummary(s models.BatchSummary)
}

type Runner struct {
	prober   Prober
	sink     Sink
	progress bool
}

func NewRunner(prober Prober, sink Sink, progress bool) *Runner {
	return &Runner{
		prober:   prober,
		sink:     sink,
		progress: progress,
	}
}

// Run probes urls strictly in order, one at a time. A failed probe never
// stops the batch; the summary is folded as a value across iterations.
// Cancellation is checked between URLs only, so an in-flight probe always
// resolves or times out before the batch stops.
func (r *Runner) Run(ctx context.Context, urls []string, template models.ProbeRequest) models.BatchSummary {
	r.sink.LogStart(len(urls), template.Method)

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.Default(int64(len(urls)), "probing")
	}

	var summary models.BatchSummary
	for _, url := range urls {
		select {
		case <-ctx.Done():
			r.sink.LogSummary(summary)
			return summary
		default:
		}

		outcome := r.prober.Probe(template.WithURL(url))
		r.sink.Record(outcome)
		summary = summary.Add(outcome)

		if bar != nil {
			bar.Add(1)
		}
	}

	r.sink.LogSummary(summary)
	return summary
}
