package reconcile

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/gatewayops/kongsync/internal/admin"
)

// ServiceSpec is the desired state of a Service. The unique name is its
// logical key.
type ServiceSpec struct {
	Name           string `json:"name"`
	Host           string `json:"host"`
	Protocol       string `json:"protocol,omitempty"`
	Port           *int   `json:"port,omitempty"`
	Path           string `json:"path,omitempty"`
	Retries        *int   `json:"retries,omitempty"`
	ConnectTimeout *int   `json:"connect_timeout,omitempty"`
	WriteTimeout   *int   `json:"write_timeout,omitempty"`
	ReadTimeout    *int   `json:"read_timeout,omitempty"`
}

func (s ServiceSpec) Validate() error {
	var result error
	if s.Name == "" {
		result = multierror.Append(result, NewValidationError("a service name must be provided"))
	}
	if s.Host == "" {
		result = multierror.Append(result, NewValidationError("a host must be provided"))
	}
	return result
}

func servicePayload(spec ServiceSpec) admin.ServiceRequest {
	return admin.ServiceRequest{
		Name:           spec.Name,
		Host:           spec.Host,
		Protocol:       spec.Protocol,
		Port:           spec.Port,
		Path:           spec.Path,
		Retries:        spec.Retries,
		ConnectTimeout: spec.ConnectTimeout,
		WriteTimeout:   spec.WriteTimeout,
		ReadTimeout:    spec.ReadTimeout,
	}
}

// serviceUpToDate compares only the fields the desired state sets;
// everything else stays on the gateway's defaults untouched.
func serviceUpToDate(existing admin.Service, spec ServiceSpec) bool {
	if existing.Host != spec.Host {
		return false
	}
	if spec.Protocol != "" && existing.Protocol != spec.Protocol {
		return false
	}
	if spec.Port != nil && existing.Port != *spec.Port {
		return false
	}
	if spec.Path != "" && existing.Path != spec.Path {
		return false
	}
	if spec.Retries != nil && existing.Retries != *spec.Retries {
		return false
	}
	if spec.ConnectTimeout != nil && existing.ConnectTimeout != *spec.ConnectTimeout {
		return false
	}
	if spec.WriteTimeout != nil && existing.WriteTimeout != *spec.WriteTimeout {
		return false
	}
	if spec.ReadTimeout != nil && existing.ReadTimeout != *spec.ReadTimeout {
		return false
	}
	return true
}

// ApplyService converges the gateway to the desired Service state,
// choosing create or patch on whether the name already resolves.
func (r *Reconciler) ApplyService(ctx context.Context, spec ServiceSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.services.Get(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if serviceUpToDate(*existing, spec) {
			r.logger.Debug("service up to date", "name", spec.Name, "id", existing.ID)
			return unchanged(existing.ID), nil
		}
		service, err := r.services.Update(ctx, spec.Name, servicePayload(spec))
		if err != nil {
			return nil, err
		}
		r.logger.Info("updated service", "name", spec.Name, "id", service.ID)
		r.recordOperation("service", ActionUpdated)
		return updated(service.ID), nil
	}

	service, err := r.services.Create(ctx, servicePayload(spec))
	if err != nil {
		return nil, err
	}
	r.logger.Info("created service", "name", spec.Name, "id", service.ID)
	r.recordOperation("service", ActionCreated)
	return created(service.ID), nil
}

// DeleteService removes the named Service if it exists.
func (r *Reconciler) DeleteService(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		return nil, NewValidationError("a service name must be provided")
	}

	existing, err := r.services.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return noop(), nil
	}

	if err := r.services.Delete(ctx, name); err != nil {
		return nil, err
	}
	r.logger.Info("deleted service", "name", name, "id", existing.ID)
	r.recordOperation("service", ActionDeleted)
	return deleted(existing.ID), nil
}
