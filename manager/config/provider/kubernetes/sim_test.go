package kubernetes

import (
	"context"
	"testing"
	"time"

	"github.com/netdata/hostsmerge/manager/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	v1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/tools/cache"
)

const (
	startDeadline   = time.Second
	collectDeadline = time.Second * 2
)

type providerSim struct {
	cfg       Config
	objects   []runtime.Object
	afterSync func(ctx context.Context, client v1.ConfigMapInterface)
	want      []config.Config
}

func (sim providerSim) run(t *testing.T) {
	t.Helper()

	client := fake.NewSimpleClientset(sim.objects...)
	p := newProvider(sim.cfg, client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	got := make(chan []config.Config)
	go func() { got <- sim.collect(t, p) }()
	go p.Run(ctx)

	select {
	case <-p.started:
	case <-time.After(startDeadline):
		t.Fatalf("provider '%s' failed to start in %s", p, startDeadline)
	}
	require.Truef(t, cache.WaitForCacheSync(ctx.Done(), p.inf.HasSynced), "provider '%s' failed to sync", p)

	if sim.afterSync != nil {
		// let the initial state reach the collector first.
		time.Sleep(time.Millisecond * 50)
		sim.afterSync(ctx, client.CoreV1().ConfigMaps(sim.cfg.Namespace))
	}

	assert.Equal(t, sim.want, <-got)
}

// collect gathers configs until it has as many as expected, then keeps
// listening for collectDeadline to catch unexpected extra ones.
func (sim providerSim) collect(t *testing.T, p *Provider) (cfgs []config.Config) {
	for {
		select {
		case updates := <-p.Configs():
			cfgs = append(cfgs, updates...)
			if len(cfgs) > len(sim.want) {
				return cfgs
			}
		case <-time.After(collectDeadline):
			if len(cfgs) < len(sim.want) {
				t.Logf("provider '%s' timed out after %s, got %d configs, expected %d",
					p, collectDeadline, len(cfgs), len(sim.want))
			}
			return cfgs
		}
	}
}
