package aggregate

import (
	"context"
	"time"

	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/rs/zerolog"
)

type (
	Fetcher interface {
		Fetch(ctx context.Context, url string) ([]string, error)
	}
	Cleaner interface {
		Clean(lines []string) model.Set
	}
	Aggregator struct {
		Fetcher
		Cleaner

		sources []string
		log     zerolog.Logger
	}
)

func New(sources []string, fetcher Fetcher, cleaner Cleaner) *Aggregator {
	return &Aggregator{
		Fetcher: fetcher,
		Cleaner: cleaner,
		sources: sources,
		log:     log.New("aggregator"),
	}
}

// Aggregate fetches and cleans the sources one at a time, in order, and
// returns the union of all cleaned lines. A failed source contributes no
// lines and does not stop the run.
func (a *Aggregator) Aggregate(ctx context.Context) (model.Set, []model.SourceStatus) {
	combined := model.NewSet()
	statuses := make([]model.SourceStatus, 0, len(a.sources))

	for i, url := range a.sources {
		if err := ctx.Err(); err != nil {
			a.log.Warn().Err(err).Msgf("skipping %d remaining source(s)", len(a.sources)-i)
			for _, url := range a.sources[i:] {
				statuses = append(statuses, model.SourceStatus{URL: url, Err: err})
			}
			break
		}
		statuses = append(statuses, a.aggregate(ctx, url, combined))
	}

	return dedup(combined), statuses
}

func (a *Aggregator) aggregate(ctx context.Context, url string, combined model.Set) (status model.SourceStatus) {
	a.log.Info().Msgf("fetching from '%s' ...", url)

	status.URL = url
	start := time.Now()
	defer func() { status.Duration = time.Since(start) }()

	lines, err := a.Fetch(ctx, url)
	if err != nil {
		status.Err = err
		return status
	}

	cleaned := a.Clean(lines)
	combined.Merge(cleaned)

	status.OK = true
	status.Fetched = len(lines)
	status.Cleaned = cleaned.Len()
	return status
}

// dedup is the final uniqueness pass over the combined set.
func dedup(set model.Set) model.Set {
	out := make(model.Set, set.Len())
	for line := range set {
		out.Add(line)
	}
	return out
}
