package model

import (
	"fmt"
	"time"
)

type (
	// SourceStatus is the outcome of one source within a run.
	SourceStatus struct {
		URL      string
		OK       bool
		Err      error
		Fetched  int // raw lines received
		Cleaned  int // unique lines left after cleaning
		Duration time.Duration
	}
	Report struct {
		RunID   string
		Name    string
		Started time.Time
		Sources []SourceStatus
		Total   int
		Written int
		Output  string
	}
)

func (s SourceStatus) String() string {
	if !s.OK {
		return fmt.Sprintf("%s: failed (%v)", s.URL, s.Err)
	}
	return fmt.Sprintf("%s: %d/%d line(s)", s.URL, s.Cleaned, s.Fetched)
}

func (r Report) Succeeded() (n int) {
	for _, s := range r.Sources {
		if s.OK {
			n++
		}
	}
	return n
}

func (r Report) Failed() int {
	return len(r.Sources) - r.Succeeded()
}

func (r Report) String() string {
	return fmt.Sprintf("run '%s' (%s): %d/%d sources fetched, %d unique line(s), %d written to '%s'",
		r.RunID, r.Name, r.Succeeded(), len(r.Sources), r.Total, r.Written, r.Output)
}
