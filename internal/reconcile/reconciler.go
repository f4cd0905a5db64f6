package reconcile

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/gatewayops/kongsync/internal/admin"
	"github.com/gatewayops/kongsync/internal/metrics"
)

// ServiceResolver resolves and mutates Service resources.
type ServiceResolver interface {
	Get(ctx context.Context, nameOrID string) (*admin.Service, error)
	Create(ctx context.Context, req admin.ServiceRequest) (*admin.Service, error)
	Update(ctx context.Context, nameOrID string, req admin.ServiceRequest) (*admin.Service, error)
	Delete(ctx context.Context, nameOrID string) error
}

// RouteResolver resolves and mutates Route resources.
type RouteResolver interface {
	Get(ctx context.Context, nameOrID string) (*admin.Route, error)
	ListAllByService(ctx context.Context, service string) ([]admin.Route, error)
	Create(ctx context.Context, req admin.RouteRequest) (*admin.Route, error)
	Update(ctx context.Context, id string, req admin.RouteRequest) (*admin.Route, error)
	Delete(ctx context.Context, id string) error
}

// ConsumerResolver resolves and mutates Consumer resources and their
// credential sub-resources.
type ConsumerResolver interface {
	Get(ctx context.Context, nameOrID string) (*admin.Consumer, error)
	Put(ctx context.Context, nameOrID string, req admin.ConsumerRequest) (*admin.Consumer, bool, error)
	Delete(ctx context.Context, nameOrID string) error
	ListCredentials(ctx context.Context, consumer, authType string, filter map[string]interface{}) ([]admin.Credential, error)
	CreateCredential(ctx context.Context, consumer, authType string, config map[string]interface{}) (admin.Credential, error)
	UpdateCredential(ctx context.Context, consumer, authType, id string, config map[string]interface{}) (admin.Credential, error)
	DeleteCredential(ctx context.Context, consumer, authType, id string) error
}

// PluginStore queries and mutates Plugin resources.
type PluginStore interface {
	ListAll(ctx context.Context) ([]admin.Plugin, error)
	ListAllForService(ctx context.Context, service string) ([]admin.Plugin, error)
	ListAllForRoute(ctx context.Context, route string) ([]admin.Plugin, error)
	ListAllForConsumer(ctx context.Context, consumer string) ([]admin.Plugin, error)
	Create(ctx context.Context, payload map[string]interface{}) (*admin.Plugin, error)
	Update(ctx context.Context, id string, payload map[string]interface{}) (*admin.Plugin, error)
	Delete(ctx context.Context, id string) error
}

// Reconciler converges desired resource specifications against the
// gateway. Resolvers are injected per resource kind so they can be
// exercised in isolation.
type Reconciler struct {
	services  ServiceResolver
	routes    RouteResolver
	consumers ConsumerResolver
	plugins   PluginStore
	logger    hclog.Logger
}

// New builds a Reconciler over the given admin client.
func New(client *admin.Client, logger hclog.Logger) *Reconciler {
	return NewWithResolvers(client.Services(), client.Routes(), client.Consumers(), client.Plugins(), logger)
}

func NewWithResolvers(services ServiceResolver, routes RouteResolver, consumers ConsumerResolver, plugins PluginStore, logger hclog.Logger) *Reconciler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reconciler{
		services:  services,
		routes:    routes,
		consumers: consumers,
		plugins:   plugins,
		logger:    logger.Named("reconcile"),
	}
}

// bindings holds the ids resolved from the names referenced by a
// desired specification. An empty field means the binding was not
// requested.
type bindings struct {
	service  string
	route    string
	consumer string
}

// resolveService turns a Service name into a validated id. An
// unresolved name is fatal to the operation referencing it.
func (r *Reconciler) resolveService(ctx context.Context, name string) (string, error) {
	service, err := r.services.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if service == nil {
		return "", NewValidationError("service %q not found, has it been created?", name)
	}
	return validateID("service", service.ID)
}

func (r *Reconciler) resolveRoute(ctx context.Context, name string) (string, error) {
	route, err := r.routes.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if route == nil {
		return "", NewValidationError("route %q not found, has it been created?", name)
	}
	return validateID("route", route.ID)
}

func (r *Reconciler) resolveConsumer(ctx context.Context, name string) (string, error) {
	consumer, err := r.consumers.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if consumer == nil {
		return "", NewValidationError("consumer %q not found, has it been created?", name)
	}
	return validateID("consumer", consumer.ID)
}

// validateID checks that an id resolved from a name is a well-formed
// opaque identifier before it is embedded in a write payload.
func validateID(kind, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", NewValidationError("%s resolved to malformed id %q: %s", kind, id, err)
	}
	return id, nil
}

func (r *Reconciler) recordOperation(kind string, action Action) {
	metrics.Registry.Reconcile.Operations.WithLabelValues(kind, string(action)).Inc()
}
