package manager

import (
	"context"
	"fmt"
	"sync"

	"github.com/netdata/hostsmerge/manager/config"
	"github.com/netdata/hostsmerge/pipeline"
	"github.com/netdata/hostsmerge/pipeline/aggregate"
	"github.com/netdata/hostsmerge/pipeline/clean"
	"github.com/netdata/hostsmerge/pipeline/export"
	"github.com/netdata/hostsmerge/pipeline/fetch"
	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/log"
	"github.com/netdata/hostsmerge/pkg/metrics"

	"github.com/rs/zerolog"
)

type (
	// Manager rebuilds the combined list every time a config source reports
	// a changed pipeline config.
	Manager struct {
		prov     ConfigProvider
		override func(*config.PipelineConfig)

		factory factory

		cache map[string]uint64
		runs  map[string]func()
		log   zerolog.Logger
	}
	ConfigProvider interface {
		Run(ctx context.Context)
		Configs() chan []config.Config
	}
	hostsPipeline interface {
		Run(ctx context.Context) (*model.Report, error)
	}
	factory interface {
		create(cfg config.PipelineConfig) (hostsPipeline, error)
	}
	factoryFunc func(cfg config.PipelineConfig) (hostsPipeline, error)
)

func (f factoryFunc) create(cfg config.PipelineConfig) (hostsPipeline, error) { return f(cfg) }

// New returns a manager for the provider. The optional override is applied to
// every received config before defaults, e.g. to force the output path.
func New(provider ConfigProvider, override func(*config.PipelineConfig)) *Manager {
	return &Manager{
		prov:     provider,
		override: override,
		factory:  factoryFunc(newPipeline),
		cache:    make(map[string]uint64),
		runs:     make(map[string]func()),
		log:      log.New("manager"),
	}
}

func (m *Manager) Run(ctx context.Context) {
	m.log.Info().Msg("instance is started")
	defer m.log.Info().Msg("instance is stopped")
	defer m.cleanup()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() { defer wg.Done(); m.prov.Run(ctx) }()

	wg.Add(1)
	go func() { defer wg.Done(); m.run(ctx) }()

	wg.Wait()
	<-ctx.Done()
}

func (m *Manager) cleanup() {
	for _, stop := range m.runs {
		stop()
	}
}

func (m *Manager) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfgs := <-m.prov.Configs():
			for _, cfg := range cfgs {
				select {
				case <-ctx.Done():
					return
				default:
					m.process(ctx, cfg)
				}
			}
		}
	}
}

func (m *Manager) process(ctx context.Context, cfg config.Config) {
	if cfg.Source == "" {
		return
	}

	if cfg.Pipeline == nil {
		delete(m.cache, cfg.Source)
		m.handleRemoveConfig(cfg)
		return
	}

	pcfg := *cfg.Pipeline
	if m.override != nil {
		m.override(&pcfg)
	}
	pcfg.ApplyDefaults()

	if hash, ok := m.cache[cfg.Source]; !ok || hash != pcfg.Hash() {
		m.cache[cfg.Source] = pcfg.Hash()
		m.handleNewConfig(ctx, cfg.Source, pcfg)
	}
}

func (m *Manager) handleRemoveConfig(cfg config.Config) {
	if stop, ok := m.runs[cfg.Source]; ok {
		m.log.Info().Msgf("config '%s' is removed", cfg.Source)
		delete(m.runs, cfg.Source)
		stop()
	}
}

func (m *Manager) handleNewConfig(ctx context.Context, source string, cfg config.PipelineConfig) {
	p, err := m.factory.create(cfg)
	if err != nil {
		m.log.Error().Err(err).Msgf("failed to create pipeline from '%s'", source)
		return
	}

	if stop, ok := m.runs[source]; ok {
		stop()
	}

	var wg sync.WaitGroup
	runCtx, cancel := context.WithCancel(ctx)

	wg.Add(1)
	go func() {
		defer wg.Done()
		report, err := p.Run(runCtx)
		switch {
		case err != nil && runCtx.Err() != nil:
			m.log.Info().Msgf("run for '%s' is cancelled", source)
		case err != nil:
			m.log.Error().Err(err).Msgf("run for '%s' failed", source)
		default:
			m.log.Info().Msgf("%s", report)
		}
	}()
	stop := func() { cancel(); wg.Wait() }

	m.runs[source] = stop
}

// NewPipeline wires fetch, clean, aggregate and export stages from cfg.
func NewPipeline(cfg config.PipelineConfig) (*pipeline.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline '%s' config validation: %v", cfg.Name, err)
	}
	fetcher, err := fetch.New(cfg.Fetch)
	if err != nil {
		return nil, err
	}
	cleaner, err := clean.New(cfg.Clean)
	if err != nil {
		return nil, err
	}
	writer, err := export.New(cfg.Export)
	if err != nil {
		return nil, err
	}

	var reporters []pipeline.Reporter
	if cfg.Metrics.Filename != "" {
		reporters = append(reporters, metrics.NewTextfile(cfg.Metrics.Filename))
	}

	aggregator := aggregate.New(cfg.Sources, fetcher, cleaner)
	return pipeline.New(cfg.Name, aggregator, writer, reporters...), nil
}

func newPipeline(cfg config.PipelineConfig) (hostsPipeline, error) {
	p, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}
