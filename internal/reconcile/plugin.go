package reconcile

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/gatewayops/kongsync/internal/admin"
)

// PluginSpec is the desired state of a single Plugin instance: a plugin
// type name, its configuration, and bindings expressed as resource
// names. The logical key is the (name, service, route, consumer) tuple;
// at most one Plugin may exist for it.
type PluginSpec struct {
	Name     string                 `json:"name"`
	Service  string                 `json:"service,omitempty"`
	Route    string                 `json:"route,omitempty"`
	Consumer string                 `json:"consumer,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

func (s PluginSpec) Validate() error {
	var result error
	if s.Name == "" {
		result = multierror.Append(result, NewValidationError("a plugin name must be provided"))
	}
	return result
}

func (s PluginSpec) tuple() map[string]string {
	return map[string]string{
		"name":     s.Name,
		"service":  s.Service,
		"route":    s.Route,
		"consumer": s.Consumer,
	}
}

// resolvePluginBindings resolves every referenced name on the spec to a
// validated id. Names that fail to resolve are fatal.
func (r *Reconciler) resolvePluginBindings(ctx context.Context, spec PluginSpec) (bindings, error) {
	resolved := bindings{}
	var err error
	if spec.Service != "" {
		if resolved.service, err = r.resolveService(ctx, spec.Service); err != nil {
			return bindings{}, err
		}
	}
	if spec.Route != "" {
		if resolved.route, err = r.resolveRoute(ctx, spec.Route); err != nil {
			return bindings{}, err
		}
	}
	if spec.Consumer != "" {
		if resolved.consumer, err = r.resolveConsumer(ctx, spec.Consumer); err != nil {
			return bindings{}, err
		}
	}
	return resolved, nil
}

// listPluginCandidates gathers the full paginated candidate set from
// the most narrowly scoped collection the bindings allow.
func (r *Reconciler) listPluginCandidates(ctx context.Context, spec PluginSpec) ([]admin.Plugin, error) {
	switch {
	case spec.Consumer != "":
		return r.plugins.ListAllForConsumer(ctx, spec.Consumer)
	case spec.Route != "":
		return r.plugins.ListAllForRoute(ctx, spec.Route)
	case spec.Service != "":
		return r.plugins.ListAllForService(ctx, spec.Service)
	default:
		return r.plugins.ListAll(ctx)
	}
}

// QueryPlugins resolves the spec's bindings and returns the existing
// Plugins that logically match its identifying tuple.
func (r *Reconciler) QueryPlugins(ctx context.Context, spec PluginSpec) ([]admin.Plugin, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	resolved, err := r.resolvePluginBindings(ctx, spec)
	if err != nil {
		return nil, err
	}
	candidates, err := r.listPluginCandidates(ctx, spec)
	if err != nil {
		return nil, err
	}
	return matchPlugins(candidates, spec.Name, resolved), nil
}

// pluginPayload builds the flattened write payload: the type name, each
// config entry under a "config." prefix, and an "<relation>.id" entry
// per resolved binding.
func pluginPayload(spec PluginSpec, resolved bindings) map[string]interface{} {
	payload := map[string]interface{}{
		"name": spec.Name,
	}
	for key, value := range admin.FlattenConfig(spec.Config) {
		payload[key] = value
	}
	if resolved.service != "" {
		payload["service.id"] = resolved.service
	}
	if resolved.route != "" {
		payload["route.id"] = resolved.route
	}
	if resolved.consumer != "" {
		payload["consumer.id"] = resolved.consumer
	}
	return payload
}

// ApplyPlugin converges the gateway to the desired Plugin state: create
// when no instance matches the logical key, patch in place when exactly
// one matches and its config drifted, and report no change otherwise.
// More than one match is fatal.
func (r *Reconciler) ApplyPlugin(ctx context.Context, spec PluginSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	resolved, err := r.resolvePluginBindings(ctx, spec)
	if err != nil {
		return nil, err
	}

	candidates, err := r.listPluginCandidates(ctx, spec)
	if err != nil {
		return nil, err
	}
	matches := matchPlugins(candidates, spec.Name, resolved)
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "plugin", Fields: spec.tuple()}
	}

	if len(matches) == 1 {
		existing := matches[0]
		if configUpToDate(existing.Config, spec.Config) {
			r.logger.Debug("plugin up to date", "name", spec.Name, "id", existing.ID)
			return unchanged(existing.ID), nil
		}
		plugin, err := r.plugins.Update(ctx, existing.ID, pluginPayload(spec, resolved))
		if err != nil {
			return nil, err
		}
		r.logger.Info("updated plugin", "name", spec.Name, "id", plugin.ID)
		r.recordOperation("plugin", ActionUpdated)
		return updated(plugin.ID), nil
	}

	plugin, err := r.plugins.Create(ctx, pluginPayload(spec, resolved))
	if err != nil {
		return nil, err
	}
	r.logger.Info("created plugin", "name", spec.Name, "id", plugin.ID)
	r.recordOperation("plugin", ActionCreated)
	return created(plugin.ID), nil
}

// DeletePlugin removes the Plugin matching the spec's logical key. No
// match is a no-op; more than one match is fatal.
func (r *Reconciler) DeletePlugin(ctx context.Context, spec PluginSpec) (*Result, error) {
	matches, err := r.QueryPlugins(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "plugin", Fields: spec.tuple()}
	}
	if len(matches) == 0 {
		return noop(), nil
	}

	if err := r.plugins.Delete(ctx, matches[0].ID); err != nil {
		return nil, err
	}
	r.logger.Info("deleted plugin", "name", spec.Name, "id", matches[0].ID)
	r.recordOperation("plugin", ActionDeleted)
	return deleted(matches[0].ID), nil
}
