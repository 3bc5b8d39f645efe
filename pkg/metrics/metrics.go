package metrics

import (
	"fmt"

	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Config struct {
	Filename string `yaml:"filename"` // optional, node_exporter textfile
}

const namespace = "hostsmerge"

// Textfile writes the outcome of every run in the Prometheus text format.
type Textfile struct {
	file string
	log  zerolog.Logger
}

func NewTextfile(file string) *Textfile {
	return &Textfile{
		file: file,
		log:  log.New("metrics"),
	}
}

func (t Textfile) String() string {
	return fmt.Sprintf("metrics textfile (%s)", t.file)
}

func (t *Textfile) Report(report *model.Report) error {
	reg := prometheus.NewRegistry()

	sourceUp := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_up",
			Help:      "Whether the last fetch of the source succeeded.",
		},
		[]string{"source"},
	)
	sourceLines := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_lines",
			Help:      "Unique lines the source contributed after cleaning.",
		},
		[]string{"source"},
	)
	sourceDuration := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Time spent fetching and cleaning the source.",
		},
		[]string{"source"},
	)
	linesTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lines_total",
		Help:      "Unique lines in the combined list.",
	})
	sourcesFailed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sources_failed",
		Help:      "Sources that contributed nothing because the fetch failed.",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Start time of the last run.",
	})

	reg.MustRegister(sourceUp, sourceLines, sourceDuration, linesTotal, sourcesFailed, lastRun)

	for _, s := range report.Sources {
		var up float64
		if s.OK {
			up = 1
		}
		sourceUp.WithLabelValues(s.URL).Set(up)
		sourceLines.WithLabelValues(s.URL).Set(float64(s.Cleaned))
		sourceDuration.WithLabelValues(s.URL).Set(s.Duration.Seconds())
	}
	linesTotal.Set(float64(report.Total))
	sourcesFailed.Set(float64(report.Failed()))
	if !report.Started.IsZero() {
		lastRun.Set(float64(report.Started.Unix()))
	}

	if err := prometheus.WriteToTextfile(t.file, reg); err != nil {
		return fmt.Errorf("write metrics textfile '%s': %v", t.file, err)
	}
	t.log.Debug().Msgf("wrote metrics to '%s'", t.file)
	return nil
}
