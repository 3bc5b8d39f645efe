package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/netdata/hostsmerge/pipeline/model"

	"github.com/stretchr/testify/assert"
)

type aggregateSim struct {
	sources      map[string][]string // url -> body lines, missing url fails
	order        []string
	wantSet      model.Set
	wantStatuses []model.SourceStatus
}

func (sim aggregateSim) run(t *testing.T) {
	fetcher := &mockFetcher{sources: sim.sources}
	agg := New(sim.order, fetcher, mockCleaner{})

	set, statuses := agg.Aggregate(context.Background())

	assert.Equal(t, sim.wantSet, set)
	assert.Equal(t, sim.order, fetcher.seen, "sources fetched in order, once each")

	for i := range statuses {
		statuses[i].Duration = 0
		if statuses[i].Err != nil {
			statuses[i].Err = errSourceFailed
		}
	}
	assert.Equal(t, sim.wantStatuses, statuses)

	var sum int
	for _, s := range statuses {
		sum += s.Cleaned
	}
	assert.LessOrEqual(t, set.Len(), sum)
}

var errSourceFailed = errors.New("source fetch failed")

type (
	mockFetcher struct {
		sources map[string][]string
		seen    []string
	}
	mockCleaner struct{}
)

func (f *mockFetcher) Fetch(_ context.Context, url string) ([]string, error) {
	f.seen = append(f.seen, url)
	lines, ok := f.sources[url]
	if !ok {
		return nil, errSourceFailed
	}
	return lines, nil
}

func (mockCleaner) Clean(lines []string) model.Set {
	set := model.NewSet()
	for _, line := range lines {
		if line != "" {
			set.Add(line)
		}
	}
	return set
}
