// Package instance holds the per-server state of the IT infrastructure
// access service and the process-wide registry that resolves it.
package instance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/services/assets"
	"github.com/odpi/itinfra/internal/app/services/collections"
	"github.com/odpi/itinfra/internal/app/services/feedback"
	"github.com/odpi/itinfra/internal/app/services/licenses"
	"github.com/odpi/itinfra/internal/app/services/processes"
	"github.com/odpi/itinfra/internal/app/services/profiles"
	"github.com/odpi/itinfra/internal/app/services/references"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/pkg/logger"
)

// ServiceInstance is the access service running on one server.
type ServiceInstance struct {
	ServerName        string
	LocalServerUserID string

	Repository storage.Repository
	Handler    *handlers.ElementHandler
	Publisher  events.Publisher

	Assets      *assets.Service
	Processes   *processes.Service
	Profiles    *profiles.Service
	Feedback    *feedback.Service
	Collections *collections.Service
	References  *references.Service
	Licenses    *licenses.Service
}

// Options configure a new ServiceInstance. Publisher defaults to events.Noop
// and Types to the built-in registry.
type Options struct {
	Config     handlers.Config
	Repository storage.Repository
	Publisher  events.Publisher
	Types      *types.Registry
	Recorder   handlers.Recorder
	Logger     *logger.Logger
}

// New builds the handler and facade services for one server.
func New(opts Options) (*ServiceInstance, error) {
	name := strings.TrimSpace(opts.Config.ServerName)
	if name == "" {
		return nil, errors.NullParameter("serverName", "newServiceInstance")
	}
	if opts.Repository == nil {
		return nil, errors.NullParameter("repository", "newServiceInstance")
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Noop{}
	}
	if opts.Types == nil {
		opts.Types = types.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewDefault("instance")
	}
	log = log.With("server", name)
	opts.Config.ServerName = name

	h := handlers.NewElementHandler(opts.Repository, opts.Types, opts.Publisher, opts.Config, log.Component("handlers"))
	if opts.Recorder != nil {
		h.WithRecorder(opts.Recorder)
	}
	return &ServiceInstance{
		ServerName:        name,
		LocalServerUserID: opts.Config.LocalServerUserID,
		Repository:        opts.Repository,
		Handler:           h,
		Publisher:         opts.Publisher,
		Assets:            assets.New(h, log.Component("assets")),
		Processes:         processes.New(h, log.Component("processes")),
		Profiles:          profiles.New(h, log.Component("profiles")),
		Feedback:          feedback.New(h, log.Component("feedback")),
		Collections:       collections.New(h, log.Component("collections")),
		References:        references.New(h, log.Component("references")),
		Licenses:          licenses.New(h, log.Component("licenses")),
	}, nil
}

// Config returns the server options the instance was built with.
func (i *ServiceInstance) Config() handlers.Config { return i.Handler.Config() }

// Registry maps server names to their running instance.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*ServiceInstance
}

// Default is the process-wide registry.
var Default = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]*ServiceInstance)}
}

// Register adds an instance. A server can be registered once.
func (r *Registry) Register(inst *ServiceInstance) error {
	if inst == nil {
		return errors.NullParameter("instance", "registerServer")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.instances[inst.ServerName]; exists {
		return errors.AlreadyExists("server", inst.ServerName)
	}
	r.instances[inst.ServerName] = inst
	return nil
}

// Get resolves the instance serving serverName for a request by userID.
func (r *Registry) Get(serverName, userID, operation string) (*ServiceInstance, error) {
	if err := handlers.ValidateUserID(userID, operation); err != nil {
		return nil, err
	}
	if strings.TrimSpace(serverName) == "" {
		return nil, errors.NullParameter("serverName", operation)
	}
	r.mu.RLock()
	inst, ok := r.instances[serverName]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.ServerNotActive(serverName)
	}
	return inst, nil
}

// Remove unregisters a server and closes its publisher.
func (r *Registry) Remove(serverName string) error {
	r.mu.Lock()
	inst, ok := r.instances[serverName]
	delete(r.instances, serverName)
	r.mu.Unlock()
	if !ok {
		return errors.ServerNotActive(serverName)
	}
	return inst.Publisher.Close()
}

// Names returns the registered server names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instances returns the registered instances ordered by server name.
func (r *Registry) Instances() []*ServiceInstance {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ServiceInstance, 0, len(names))
	for _, name := range names {
		if inst, ok := r.instances[name]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// Shutdown unregisters every server and closes their publishers. A
// publisher shared by several servers is closed once per server.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[string]*ServiceInstance)
	r.mu.Unlock()

	var errs []error
	for name, inst := range instances {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := inst.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher for %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
