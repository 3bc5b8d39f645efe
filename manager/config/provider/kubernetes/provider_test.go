package kubernetes

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/netdata/hostsmerge/manager/config"
	"github.com/netdata/hostsmerge/pipeline/clean"
	"github.com/netdata/hostsmerge/pipeline/export"
	"github.com/netdata/hostsmerge/pipeline/fetch"
	"github.com/netdata/hostsmerge/pkg/k8s"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	v1 "k8s.io/client-go/kubernetes/typed/core/v1"
)

func TestMain(m *testing.M) {
	_ = os.Setenv(k8s.EnvFakeClient, "true")
	code := m.Run()
	_ = os.Unsetenv(k8s.EnvFakeClient)
	os.Exit(code)
}

func TestNewProvider(t *testing.T) {
	tests := map[string]struct {
		cfg       Config
		expectErr bool
	}{
		"valid config":           {cfg: Config{ConfigMap: "hostsmerge", Key: "config.yml"}},
		"config map not set":     {cfg: Config{Key: "config.yml"}, expectErr: true},
		"config map key not set": {cfg: Config{ConfigMap: "hostsmerge"}, expectErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewProvider(test.cfg)

			if test.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, p.Configs())
				assert.Equal(t, "k8s/cmap//hostsmerge:config.yml", p.String())
			}
		})
	}
}

func TestProvider_Run(t *testing.T) {
	cfg := Config{Namespace: "default", ConfigMap: "hostsmerge", Key: key}

	tests := map[string]providerSim{
		"cmap exists before start": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", listConfig)),
			want:    []config.Config{{Source: src, Pipeline: listPipeline()}},
		},
		"cmap created after start": {
			cfg: cfg,
			afterSync: func(ctx context.Context, client v1.ConfigMapInterface) {
				_, _ = client.Create(ctx, newConfigMap("hostsmerge", listConfig), metav1.CreateOptions{})
			},
			want: []config.Config{{Source: src, Pipeline: listPipeline()}},
		},
		"cmap deleted after start": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", listConfig)),
			afterSync: func(ctx context.Context, client v1.ConfigMapInterface) {
				_ = client.Delete(ctx, "hostsmerge", metav1.DeleteOptions{})
			},
			want: []config.Config{
				{Source: src, Pipeline: listPipeline()},
				{Source: src},
			},
		},
		"followed key updated": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", listConfig)),
			afterSync: func(ctx context.Context, client v1.ConfigMapInterface) {
				_, _ = client.Update(ctx, newConfigMap("hostsmerge", minimalConfig), metav1.UpdateOptions{})
			},
			want: []config.Config{
				{Source: src, Pipeline: listPipeline()},
				{Source: src, Pipeline: minimalPipeline()},
			},
		},
		"other key updated": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", listConfig)),
			afterSync: func(ctx context.Context, client v1.ConfigMapInterface) {
				cmap := newConfigMap("hostsmerge", listConfig)
				cmap.Data["notes.txt"] = "rotated"
				_, _ = client.Update(ctx, cmap, metav1.UpdateOptions{})
			},
			want: []config.Config{{Source: src, Pipeline: listPipeline()}},
		},
		"other cmaps are ignored": {
			cfg:     cfg,
			objects: objects(newConfigMap("coredns", listConfig), newConfigMap("hostsmerge-old", listConfig)),
		},
		"key is missing": {
			cfg:     Config{Namespace: "default", ConfigMap: "hostsmerge", Key: "other.yml"},
			objects: objects(newConfigMap("hostsmerge", listConfig)),
			want:    []config.Config{{Source: source("default", "hostsmerge", "other.yml")}},
		},
		"key is empty": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", "# disabled\n")),
			want:    []config.Config{{Source: src}},
		},
		"invalid config is dropped until fixed": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", "sources: ['']\n")),
			afterSync: func(ctx context.Context, client v1.ConfigMapInterface) {
				_, _ = client.Update(ctx, newConfigMap("hostsmerge", minimalConfig), metav1.UpdateOptions{})
			},
			want: []config.Config{{Source: src, Pipeline: minimalPipeline()}},
		},
		"unknown key in config": {
			cfg:     cfg,
			objects: objects(newConfigMap("hostsmerge", "sources: [https://adaway.org/hosts.txt]\noutput: hosts\n")),
		},
	}

	for name, sim := range tests {
		t.Run(name, func(t *testing.T) { sim.run(t) })
	}
}

const key = "config.yml"

var src = source("default", "hostsmerge", key)

const listConfig = `
name: k8s
sources:
  - https://raw.githubusercontent.com/StevenBlack/hosts/master/hosts
  - https://o0.pages.dev/Lite/hosts.txt
fetch:
  timeout: 5s
clean:
  exclude: ["* localhost"]
`

func listPipeline() *config.PipelineConfig {
	return &config.PipelineConfig{
		Name: "k8s",
		Sources: []string{
			"https://raw.githubusercontent.com/StevenBlack/hosts/master/hosts",
			"https://o0.pages.dev/Lite/hosts.txt",
		},
		Fetch:  fetch.Config{Timeout: time.Second * 5},
		Clean:  clean.Config{Exclude: []string{"* localhost"}},
		Export: export.Config{Filename: export.DefaultFilename},
	}
}

const minimalConfig = "sources: [https://adaway.org/hosts.txt]\n"

func minimalPipeline() *config.PipelineConfig {
	return &config.PipelineConfig{
		Name:    config.DefaultName,
		Sources: []string{"https://adaway.org/hosts.txt"},
		Export:  export.Config{Filename: export.DefaultFilename},
	}
}

func newConfigMap(name, value string) *apiv1.ConfigMap {
	return &apiv1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Data:       map[string]string{key: value},
	}
}

func objects(cmaps ...*apiv1.ConfigMap) []runtime.Object {
	objs := make([]runtime.Object, 0, len(cmaps))
	for _, cmap := range cmaps {
		objs = append(objs, cmap)
	}
	return objs
}
