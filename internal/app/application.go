package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/instance"
	"github.com/odpi/itinfra/internal/app/metrics"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/storage/memory"
	"github.com/odpi/itinfra/internal/app/system"
	"github.com/odpi/itinfra/internal/config"
	"github.com/odpi/itinfra/pkg/logger"
)

// Stores selects the repository of each server. A nil Repository gives every
// server its own in-memory store; a shared Repository serves all of them.
type Stores struct {
	Repository storage.Repository
}

// Options carry the optional collaborators of an Application.
type Options struct {
	// Publishers receive every out-topic event in addition to the hub.
	Publishers []events.Publisher
	// Recorder counts handler operations. Defaults to the prometheus recorder.
	Recorder handlers.Recorder
	// Registry defaults to a fresh registry.
	Registry *instance.Registry
}

// Application ties the server instances together and manages the lifecycle
// of the background components.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Registry *instance.Registry
	Hub      *events.Hub
	Counts   *metrics.ElementCountCollector
}

// New builds an instance for every configured server and registers it.
func New(cfg *config.Config, stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewDefault("app")
	}
	registry := opts.Registry
	if registry == nil {
		registry = instance.NewRegistry()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.OperationRecorder{}
	}

	var hub *events.Hub
	publishers := append([]events.Publisher(nil), opts.Publishers...)
	if cfg.Events.WebSocket {
		hub = events.NewHub(log.Component("out-topic"))
		publishers = append(publishers, hub)
	}
	var publisher events.Publisher = events.Noop{}
	switch len(publishers) {
	case 0:
	case 1:
		publisher = publishers[0]
	default:
		publisher = events.Multi(publishers)
	}

	for _, srv := range cfg.Servers {
		repo := stores.Repository
		if repo == nil {
			repo = memory.New()
		}
		inst, err := instance.New(instance.Options{
			Config: handlers.Config{
				ServerName:        strings.TrimSpace(srv.Name),
				LocalServerUserID: srv.LocalServerUserID,
				MaxPageSize:       srv.MaxPageSize,
				SupportedZones:    srv.SupportedZones,
				DefaultZones:      srv.DefaultZones,
				PublishZones:      srv.PublishZones,
			},
			Repository: repo,
			Publisher:  publisher,
			Recorder:   recorder,
			Logger:     log,
		})
		if err != nil {
			return nil, fmt.Errorf("build server %s: %w", srv.Name, err)
		}
		if err := registry.Register(inst); err != nil {
			return nil, fmt.Errorf("register server %s: %w", srv.Name, err)
		}
		log.WithField("server", inst.ServerName).Info("access service instance registered")
	}

	manager := system.NewManager()
	if err := manager.Register(system.Func{
		ServiceName: "server-registry",
		OnStop:      registry.Shutdown,
	}); err != nil {
		return nil, err
	}

	a := &Application{manager: manager, log: log, Registry: registry, Hub: hub}

	if schedule := strings.TrimSpace(cfg.Metrics.CountSchedule); schedule != "" {
		counts, err := metrics.NewElementCountCollector(schedule, a.counters, log.Component("element-counts"))
		if err != nil {
			return nil, fmt.Errorf("element count schedule %q: %w", schedule, err)
		}
		a.Counts = counts
		if err := manager.Register(system.Func{
			ServiceName: "element-counts",
			OnStart: func(ctx context.Context) error {
				if err := counts.Refresh(ctx); err != nil {
					log.WithError(err).Warn("initial element count failed")
				}
				counts.Start()
				return nil
			},
			OnStop: counts.Stop,
		}); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Application) counters() map[string]metrics.EntityCounter {
	out := make(map[string]metrics.EntityCounter)
	for _, inst := range a.Registry.Instances() {
		out[inst.ServerName] = inst.Repository
	}
	return out
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services, closing the server publishers last.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
