package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/netdata/hostsmerge/manager"
	"github.com/netdata/hostsmerge/manager/config"
	"github.com/netdata/hostsmerge/manager/config/provider/file"
	"github.com/netdata/hostsmerge/manager/config/provider/kubernetes"
	"github.com/netdata/hostsmerge/pkg/k8s"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/jessevdk/go-flags"
)

type options struct {
	ConfigFile  string `long:"config-file" description:"Configuration file path"`
	ConfigMap   string `long:"config-map" description:"Configuration ConfigMap (name:key), requires --watch"`
	Output      string `short:"o" long:"output" description:"Output file path, '-' for stdout"`
	MetricsFile string `long:"metrics-file" description:"Prometheus textfile path"`
	Watch       bool   `long:"watch" description:"Rebuild the list every time the configuration changes"`
	Debug       bool   `short:"d" long:"debug" description:"Debug mode"`
}

var logger = log.New("main")

func main() {
	opts := parseCLI()
	applyFromEnv(&opts)

	if err := validateOptions(opts); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate cli options")
	}

	log.SetDebug(opts.Debug)

	if opts.Watch {
		provider, err := newConfigProvider(opts)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create config provider")
		}
		runWatch(manager.New(provider, overrides(opts)))
		return
	}

	if err := runOnce(opts); err != nil {
		logger.Fatal().Err(err).Msg("failed to build the combined list")
	}
}

func runOnce(opts options) error {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return err
		}
	}
	overrides(opts)(&cfg)

	p, err := manager.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := p.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info().Msg("interrupted, output is left untouched")
			return nil
		}
		return err
	}
	logger.Info().Msgf("%s", report)
	return nil
}

func runWatch(mgr *manager.Manager) {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	wg.Add(1)
	go func() { defer wg.Done(); mgr.Run(ctx) }()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-ch
	logger.Info().Msgf("received %s signal (%d). Terminating...", sig, sig)
	cancel()
	wg.Wait()
}

// overrides returns the CLI settings that take precedence over any config source.
func overrides(opts options) func(*config.PipelineConfig) {
	return func(cfg *config.PipelineConfig) {
		if opts.Output != "" {
			cfg.Export.Filename = opts.Output
		}
		if opts.MetricsFile != "" {
			cfg.Metrics.Filename = opts.MetricsFile
		}
	}
}

func parseCLI() options {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "hostsmerge"
	parser.Usage = "[OPTION]..."

	if _, err := parser.ParseArgs(os.Args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	}
	return opts
}

func applyFromEnv(opts *options) {
	if v, ok := os.LookupEnv("HOSTSMERGE_CONFIG_FILE"); ok && opts.ConfigFile == "" {
		opts.ConfigFile = v
	}
	if v, ok := os.LookupEnv("HOSTSMERGE_CONFIG_MAP"); ok && opts.ConfigMap == "" {
		opts.ConfigMap = v
	}
	if v, ok := os.LookupEnv("HOSTSMERGE_OUTPUT"); ok && opts.Output == "" {
		opts.Output = v
	}
}

func validateOptions(opts options) error {
	if opts.ConfigFile != "" && opts.ConfigMap != "" {
		return errors.New("config-file and config-map are mutually exclusive")
	}
	if opts.ConfigMap != "" && !opts.Watch {
		return errors.New("config-map requires watch mode")
	}
	if opts.Watch && opts.ConfigFile == "" && opts.ConfigMap == "" {
		return errors.New("watch mode requires a configuration source")
	}
	if opts.ConfigMap != "" {
		if _, _, err := parseConfigMap(opts.ConfigMap); err != nil {
			return err
		}
	}
	return nil
}

func parseConfigMap(v string) (name, key string, err error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("config-map parameter bad syntax ('%s')", v)
	}
	return parts[0], parts[1], nil
}

func newConfigProvider(opts options) (manager.ConfigProvider, error) {
	if opts.ConfigFile != "" {
		return file.NewProvider([]string{opts.ConfigFile}), nil
	}

	name, key, err := parseConfigMap(opts.ConfigMap)
	if err != nil {
		return nil, err
	}
	provider, err := kubernetes.NewProvider(kubernetes.Config{
		Namespace: k8s.Namespace(),
		ConfigMap: name,
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}
