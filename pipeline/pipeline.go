package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Aggregator interface {
	Aggregate(ctx context.Context) (model.Set, []model.SourceStatus)
}

type Writer interface {
	Write(set model.Set, report *model.Report) (int, error)
	Filename() string
}

type Reporter interface {
	Report(report *model.Report) error
}

type Pipeline struct {
	Aggregator
	Writer

	name      string
	reporters []Reporter
	log       zerolog.Logger
}

func New(name string, aggregator Aggregator, writer Writer, reporters ...Reporter) *Pipeline {
	return &Pipeline{
		Aggregator: aggregator,
		Writer:     writer,
		name:       name,
		reporters:  reporters,
		log:        log.New("pipeline"),
	}
}

// Run performs one complete pass: aggregate every source, write the combined
// list and hand the report to the reporters. Source failures are reported,
// not returned. A run cancelled before the write leaves the output untouched.
func (p *Pipeline) Run(ctx context.Context) (*model.Report, error) {
	report := &model.Report{
		RunID:   uuid.New().String(),
		Name:    p.name,
		Started: time.Now(),
		Output:  p.Filename(),
	}
	l := p.log.With().Str("run", report.RunID).Logger()

	l.Info().Msgf("run '%s' is started", p.name)
	defer l.Info().Msgf("run '%s' is finished", p.name)

	set, statuses := p.Aggregate(ctx)
	report.Sources = statuses
	report.Total = set.Len()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	n, err := p.Write(set, report)
	if err != nil {
		return report, fmt.Errorf("write '%s': %v", report.Output, err)
	}
	report.Written = n

	for _, r := range p.reporters {
		if err := r.Report(report); err != nil {
			l.Warn().Err(err).Msgf("reporter '%v' failed", r)
		}
	}

	l.Info().Msgf("%d/%d sources fetched, %d line(s) written to '%s'",
		report.Succeeded(), len(report.Sources), report.Written, report.Output)
	return report, nil
}
