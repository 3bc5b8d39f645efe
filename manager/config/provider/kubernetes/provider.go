package kubernetes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/netdata/hostsmerge/manager/config"
	"github.com/netdata/hostsmerge/pkg/k8s"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/rs/zerolog"
	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"
	"k8s.io/client-go/util/workqueue"
)

type Config struct {
	Namespace string
	ConfigMap string
	Key       string
}

func validateConfig(cfg Config) error {
	if cfg.ConfigMap == "" {
		return errors.New("config map not set")
	}
	if cfg.Key == "" {
		return errors.New("config map key not set")
	}
	return nil
}

// Provider follows one key of one ConfigMap holding a hostsmerge YAML config.
// A deleted ConfigMap or a missing or empty key is sent as a removal. A value
// that fails to decode or validate is logged and dropped, so the list built
// from the previous value stays in place.
type Provider struct {
	namespace string
	cmap      string
	key       string

	client   kubernetes.Interface
	inf      cache.SharedInformer
	queue    *workqueue.Type
	configCh chan []config.Config
	started  chan struct{}
	log      zerolog.Logger
}

func NewProvider(cfg Config) (*Provider, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %v", err)
	}
	client, err := k8s.Clientset()
	if err != nil {
		return nil, fmt.Errorf("initialization: %v", err)
	}
	return newProvider(cfg, client), nil
}

func newProvider(cfg Config, client kubernetes.Interface) *Provider {
	return &Provider{
		namespace: cfg.Namespace,
		cmap:      cfg.ConfigMap,
		key:       cfg.Key,
		client:    client,
		queue:     workqueue.NewNamed("cmap"),
		configCh:  make(chan []config.Config),
		started:   make(chan struct{}),
		log:       log.New("k8s config provider"),
	}
}

func (p Provider) String() string {
	return source(p.namespace, p.cmap, p.key)
}

func (p *Provider) Configs() chan []config.Config {
	return p.configCh
}

func (p *Provider) Run(ctx context.Context) {
	p.log.Info().Msgf("instance is started, watching '%s'", p)
	defer p.log.Info().Msg("instance is stopped")
	defer p.queue.ShutDown()

	p.inf = p.newInformer(ctx)
	go p.inf.Run(ctx.Done())

	if !cache.WaitForCacheSync(ctx.Done(), p.inf.HasSynced) {
		p.log.Error().Msg("unable to sync caches")
		return
	}

	go p.run(ctx)
	close(p.started)

	<-ctx.Done()
}

const resyncPeriod = 10 * time.Minute

func (p *Provider) newInformer(ctx context.Context) cache.SharedInformer {
	client := p.client.CoreV1().ConfigMaps(p.namespace)
	byName := fields.OneTermEqualSelector("metadata.name", p.cmap).String()

	lw := &cache.ListWatch{
		ListFunc: func(opts metav1.ListOptions) (runtime.Object, error) {
			opts.FieldSelector = byName
			return client.List(ctx, opts)
		},
		WatchFunc: func(opts metav1.ListOptions) (watch.Interface, error) {
			opts.FieldSelector = byName
			return client.Watch(ctx, opts)
		},
	}

	inf := cache.NewSharedInformer(lw, &apiv1.ConfigMap{}, resyncPeriod)
	inf.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: p.enqueue,
		UpdateFunc: func(oldObj, newObj interface{}) {
			if !p.keyChanged(oldObj, newObj) {
				return
			}
			p.enqueue(newObj)
		},
		DeleteFunc: p.enqueue,
	})
	return inf
}

// keyChanged reports whether an update touched the followed key. Resyncs and
// edits of other keys do not trigger a rebuild.
func (p *Provider) keyChanged(oldObj, newObj interface{}) bool {
	oldCmap, err1 := toConfigMap(oldObj)
	newCmap, err2 := toConfigMap(newObj)
	if err1 != nil || err2 != nil {
		return true
	}
	oldValue, oldOK := oldCmap.Data[p.key]
	newValue, newOK := newCmap.Data[p.key]
	return oldOK != newOK || oldValue != newValue
}

func (p *Provider) enqueue(obj interface{}) {
	if tomb, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = tomb.Obj
	}
	cmap, err := toConfigMap(obj)
	if err != nil || cmap.Name != p.cmap {
		return
	}
	if p.namespace != apiv1.NamespaceAll && p.namespace != cmap.Namespace {
		return
	}
	key, err := cache.MetaNamespaceKeyFunc(cmap)
	if err != nil {
		return
	}
	p.queue.Add(key)
}

func (p *Provider) run(ctx context.Context) {
	for {
		item, shutdown := p.queue.Get()
		if shutdown {
			return
		}
		p.process(ctx, item.(string))
		p.queue.Done(item)
	}
}

func (p *Provider) process(ctx context.Context, key string) {
	ns, name, err := cache.SplitMetaNamespaceKey(key)
	if err != nil {
		return
	}
	cfg := config.Config{Source: source(ns, name, p.key)}

	item, exists, err := p.inf.GetStore().GetByKey(key)
	if err != nil {
		p.log.Warn().Err(err).Msgf("failed to get '%s' from the store", key)
		return
	}
	if !exists {
		p.log.Info().Msgf("cmap '%s' is deleted", key)
		p.send(ctx, cfg)
		return
	}
	cmap, err := toConfigMap(item)
	if err != nil {
		return
	}

	pcfg, err := config.Parse([]byte(cmap.Data[p.key]))
	switch {
	case err != nil:
		p.log.Error().Err(err).Msgf("invalid config in '%s', keeping the previous one", cfg.Source)
		return
	case pcfg == nil:
		p.log.Info().Msgf("'%s' is missing or empty", cfg.Source)
	default:
		p.log.Debug().Msgf("loaded '%s' (%d sources)", cfg.Source, len(pcfg.Sources))
		cfg.Pipeline = pcfg
	}
	p.send(ctx, cfg)
}

func (p *Provider) send(ctx context.Context, cfg config.Config) {
	select {
	case <-ctx.Done():
	case p.configCh <- []config.Config{cfg}:
	}
}

func source(ns, name, key string) string {
	return fmt.Sprintf("k8s/cmap/%s/%s:%s", ns, name, key)
}

func toConfigMap(obj interface{}) (*apiv1.ConfigMap, error) {
	cmap, ok := obj.(*apiv1.ConfigMap)
	if !ok {
		return nil, fmt.Errorf("received unexpected object type: %T", obj)
	}
	return cmap, nil
}
