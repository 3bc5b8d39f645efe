package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/netdata/hostsmerge/pipeline/model"
)

func TestPipeline_Run(t *testing.T) {
	tests := map[string]func() pipelineSim{
		"all sources fetched": func() pipelineSim {
			set := model.NewSet("0.0.0.0 a.com", "0.0.0.0 b.com")
			statuses := []model.SourceStatus{
				{URL: "s1", OK: true, Fetched: 3, Cleaned: 2},
				{URL: "s2", OK: true, Fetched: 1, Cleaned: 1},
			}
			return pipelineSim{
				aggregated:      set,
				statuses:        statuses,
				expectedWritten: set,
				expectedReport: model.Report{
					Name:    "test",
					Sources: statuses,
					Total:   2,
					Written: 2,
					Output:  "combined_hosts.txt",
				},
			}
		},
		"failed sources are reported, not returned": func() pipelineSim {
			set := model.NewSet("0.0.0.0 a.com")
			statuses := []model.SourceStatus{
				{URL: "s1", OK: true, Fetched: 1, Cleaned: 1},
				{URL: "s2", Err: errors.New("source fetch failed")},
			}
			return pipelineSim{
				aggregated:      set,
				statuses:        statuses,
				expectedWritten: set,
				expectedReport: model.Report{
					Name:    "test",
					Sources: statuses,
					Total:   1,
					Written: 1,
					Output:  "combined_hosts.txt",
				},
			}
		},
		"reporter error does not fail the run": func() pipelineSim {
			set := model.NewSet("0.0.0.0 a.com")
			return pipelineSim{
				aggregated:      set,
				reportErr:       errors.New("reporter error"),
				expectedWritten: set,
				expectedReport: model.Report{
					Name:    "test",
					Total:   1,
					Written: 1,
					Output:  "combined_hosts.txt",
				},
			}
		},
		"write error": func() pipelineSim {
			return pipelineSim{
				aggregated: model.NewSet("0.0.0.0 a.com"),
				writeErr:   errors.New("disk full"),
				expectErr:  true,
				expectedReport: model.Report{
					Name:   "test",
					Total:  1,
					Output: "combined_hosts.txt",
				},
			}
		},
		"cancelled run does not write": func() pipelineSim {
			statuses := []model.SourceStatus{{URL: "s1", Err: context.Canceled}}
			return pipelineSim{
				aggregated: model.NewSet(),
				statuses:   statuses,
				cancelled:  true,
				expectErr:  true,
				expectedReport: model.Report{
					Name:    "test",
					Sources: statuses,
					Output:  "combined_hosts.txt",
				},
			}
		},
	}

	for name, sim := range tests {
		t.Run(name, func(t *testing.T) { sim().run(t) })
	}
}
