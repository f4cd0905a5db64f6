package reconcile

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/gatewayops/kongsync/internal/admin"
)

// RouteSpec is the desired state of a Route. Its logical key is the
// owning Service plus the unordered hosts/paths/methods/protocols sets.
type RouteSpec struct {
	Service      string   `json:"service"`
	Name         string   `json:"name,omitempty"`
	Hosts        []string `json:"hosts,omitempty"`
	Paths        []string `json:"paths,omitempty"`
	Methods      []string `json:"methods,omitempty"`
	Protocols    []string `json:"protocols,omitempty"`
	StripPath    bool     `json:"strip_path,omitempty"`
	PreserveHost bool     `json:"preserve_host,omitempty"`
}

func (s RouteSpec) Validate() error {
	var result error
	if s.Service == "" {
		result = multierror.Append(result, NewValidationError("a service must be provided"))
	}
	if len(s.Protocols) == 0 && len(s.Hosts) == 0 && len(s.Paths) == 0 && len(s.Methods) == 0 {
		result = multierror.Append(result, NewValidationError("need at least one of protocols, hosts, paths or methods"))
	}
	return result
}

func (s RouteSpec) tuple() map[string]string {
	return map[string]string{
		"service":   s.Service,
		"hosts":     strings.Join(s.Hosts, ","),
		"paths":     strings.Join(s.Paths, ","),
		"methods":   strings.Join(s.Methods, ","),
		"protocols": strings.Join(s.Protocols, ","),
	}
}

func routePayload(spec RouteSpec, serviceID string) admin.RouteRequest {
	return admin.RouteRequest{
		Name:         spec.Name,
		Protocols:    spec.Protocols,
		Methods:      spec.Methods,
		Hosts:        spec.Hosts,
		Paths:        spec.Paths,
		StripPath:    spec.StripPath,
		PreserveHost: spec.PreserveHost,
		Service:      &admin.EntityRef{ID: serviceID},
	}
}

// QueryRoutes resolves the owning Service and returns the existing
// Routes under it whose four matching sets equal the spec's.
func (r *Reconciler) QueryRoutes(ctx context.Context, spec RouteSpec) ([]admin.Route, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.resolveService(ctx, spec.Service); err != nil {
		return nil, err
	}
	routes, err := r.routes.ListAllByService(ctx, spec.Service)
	if err != nil {
		return nil, err
	}
	return matchRoutes(routes, spec), nil
}

// routeUpToDate compares the fields outside the logical key: the sets
// already matched, so only the name and flag fields can drift.
func routeUpToDate(existing admin.Route, spec RouteSpec) bool {
	if spec.Name != "" && existing.Name != spec.Name {
		return false
	}
	return existing.StripPath == spec.StripPath && existing.PreserveHost == spec.PreserveHost
}

// ApplyRoute converges the gateway to the desired Route state.
func (r *Reconciler) ApplyRoute(ctx context.Context, spec RouteSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	serviceID, err := r.resolveService(ctx, spec.Service)
	if err != nil {
		return nil, err
	}

	routes, err := r.routes.ListAllByService(ctx, spec.Service)
	if err != nil {
		return nil, err
	}
	matches := matchRoutes(routes, spec)
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "route", Fields: spec.tuple()}
	}

	if len(matches) == 1 {
		existing := matches[0]
		if routeUpToDate(existing, spec) {
			r.logger.Debug("route up to date", "service", spec.Service, "id", existing.ID)
			return unchanged(existing.ID), nil
		}
		route, err := r.routes.Update(ctx, existing.ID, routePayload(spec, serviceID))
		if err != nil {
			return nil, err
		}
		r.logger.Info("updated route", "service", spec.Service, "id", route.ID)
		r.recordOperation("route", ActionUpdated)
		return updated(route.ID), nil
	}

	route, err := r.routes.Create(ctx, routePayload(spec, serviceID))
	if err != nil {
		return nil, err
	}
	r.logger.Info("created route", "service", spec.Service, "id", route.ID)
	r.recordOperation("route", ActionCreated)
	return created(route.ID), nil
}

// DeleteRoute removes the Route matching the spec's logical key. No
// match is a no-op; more than one match is fatal.
func (r *Reconciler) DeleteRoute(ctx context.Context, spec RouteSpec) (*Result, error) {
	matches, err := r.QueryRoutes(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "route", Fields: spec.tuple()}
	}
	if len(matches) == 0 {
		return noop(), nil
	}

	if err := r.routes.Delete(ctx, matches[0].ID); err != nil {
		return nil, err
	}
	r.logger.Info("deleted route", "service", spec.Service, "id", matches[0].ID)
	r.recordOperation("route", ActionDeleted)
	return deleted(matches[0].ID), nil
}
