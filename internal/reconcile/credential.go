package reconcile

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

const basicAuthType = "basic-auth"

// CredentialSpec is the desired state of a consumer credential: an
// auth-type sub-resource under a Consumer with free-form configuration.
type CredentialSpec struct {
	Consumer string                 `json:"consumer"`
	Type     string                 `json:"type"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

func (s CredentialSpec) Validate() error {
	var result error
	if s.Consumer == "" {
		result = multierror.Append(result, NewValidationError("a consumer must be provided"))
	}
	if s.Type == "" {
		result = multierror.Append(result, NewValidationError("an auth type must be provided"))
	}
	return result
}

// credentialFilter picks the query fields for matching an existing
// credential. Hashed basic-auth passwords never compare equal, so
// basic-auth credentials are matched by username alone.
func credentialFilter(spec CredentialSpec) map[string]interface{} {
	if spec.Type == basicAuthType {
		if username, ok := spec.Config["username"]; ok {
			return map[string]interface{}{"username": username}
		}
		return nil
	}
	return spec.Config
}

// ApplyCredential converges a consumer credential. Credentials other
// than basic-auth are immutable on the gateway, so an existing match is
// a no-op; basic-auth is patched in place to pick up password changes.
func (r *Reconciler) ApplyCredential(ctx context.Context, spec CredentialSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	consumer, err := r.consumers.Get(ctx, spec.Consumer)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, NewValidationError("consumer %q not found, has it been created?", spec.Consumer)
	}

	matches, err := r.consumers.ListCredentials(ctx, spec.Consumer, spec.Type, credentialFilter(spec))
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "credential", Fields: map[string]string{
			"consumer": spec.Consumer,
			"type":     spec.Type,
		}}
	}

	if len(matches) == 1 {
		if spec.Type == basicAuthType {
			credential, err := r.consumers.UpdateCredential(ctx, spec.Consumer, spec.Type, matches[0].ID(), spec.Config)
			if err != nil {
				return nil, err
			}
			r.logger.Info("updated credential", "consumer", spec.Consumer, "type", spec.Type, "id", credential.ID())
			r.recordOperation("credential", ActionUpdated)
			return updated(credential.ID()), nil
		}
		return unchanged(matches[0].ID()), nil
	}

	credential, err := r.consumers.CreateCredential(ctx, spec.Consumer, spec.Type, spec.Config)
	if err != nil {
		return nil, err
	}
	r.logger.Info("created credential", "consumer", spec.Consumer, "type", spec.Type, "id", credential.ID())
	r.recordOperation("credential", ActionCreated)
	return created(credential.ID()), nil
}

// DeleteCredential removes a matching consumer credential if one
// exists.
func (r *Reconciler) DeleteCredential(ctx context.Context, spec CredentialSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	consumer, err := r.consumers.Get(ctx, spec.Consumer)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, NewValidationError("consumer %q not found, has it been created?", spec.Consumer)
	}

	matches, err := r.consumers.ListCredentials(ctx, spec.Consumer, spec.Type, credentialFilter(spec))
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		return nil, &AmbiguityError{Kind: "credential", Fields: map[string]string{
			"consumer": spec.Consumer,
			"type":     spec.Type,
		}}
	}
	if len(matches) == 0 {
		return noop(), nil
	}

	if err := r.consumers.DeleteCredential(ctx, spec.Consumer, spec.Type, matches[0].ID()); err != nil {
		return nil, err
	}
	r.logger.Info("deleted credential", "consumer", spec.Consumer, "type", spec.Type, "id", matches[0].ID())
	r.recordOperation("credential", ActionDeleted)
	return deleted(matches[0].ID()), nil
}
