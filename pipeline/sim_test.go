package pipeline

import (
	"context"
	"testing"

	"github.com/netdata/hostsmerge/pipeline/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineSim struct {
	aggregated      model.Set
	statuses        []model.SourceStatus
	writeErr        error
	reportErr       error
	cancelled       bool
	expectedWritten model.Set
	expectedReport  model.Report
	expectErr       bool
}

func (sim pipelineSim) run(t *testing.T) {
	aggregator := &mockAggregator{set: sim.aggregated, statuses: sim.statuses}
	writer := &mockWriter{err: sim.writeErr}
	reporter := &mockReporter{err: sim.reportErr}

	p := New("test", aggregator, writer, reporter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if sim.cancelled {
		cancel()
	}

	report, err := p.Run(ctx)

	if sim.expectErr {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}
	require.NotNil(t, report)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.Started.IsZero())
	report.RunID, report.Started = "", sim.expectedReport.Started

	assert.Equal(t, sim.expectedReport, *report)
	assert.Equal(t, sim.expectedWritten, writer.written)
	if sim.expectErr {
		assert.Empty(t, reporter.seen)
	} else {
		assert.Equal(t, []*model.Report{report}, reporter.seen)
	}
}

type (
	mockAggregator struct {
		set      model.Set
		statuses []model.SourceStatus
	}
	mockWriter struct {
		err     error
		written model.Set
	}
	mockReporter struct {
		err  error
		seen []*model.Report
	}
)

func (a mockAggregator) Aggregate(ctx context.Context) (model.Set, []model.SourceStatus) {
	return a.set, a.statuses
}

func (w *mockWriter) Write(set model.Set, _ *model.Report) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.written = set
	return set.Len(), nil
}

func (w *mockWriter) Filename() string { return "combined_hosts.txt" }

func (r *mockReporter) Report(report *model.Report) error {
	r.seen = append(r.seen, report)
	return r.err
}
