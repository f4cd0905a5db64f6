package reconcile

import (
	"context"

	"github.com/gatewayops/kongsync/internal/admin"
)

// ConsumerSpec is the desired state of a Consumer, identified by either
// a username or a custom id.
type ConsumerSpec struct {
	Username string `json:"username,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
}

func (s ConsumerSpec) Validate() error {
	if s.Username == "" && s.CustomID == "" {
		return NewValidationError("need at least one of username or custom_id")
	}
	if s.Username != "" && s.CustomID != "" {
		return NewValidationError("username and custom_id are mutually exclusive")
	}
	return nil
}

// identifier picks whichever identity the spec carries for lookups.
func (s ConsumerSpec) identifier() string {
	if s.Username != "" {
		return s.Username
	}
	return s.CustomID
}

// ApplyConsumer installs the Consumer when it does not exist yet. An
// existing Consumer is left untouched since its only fields are its
// identity.
func (r *Reconciler) ApplyConsumer(ctx context.Context, spec ConsumerSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.consumers.Get(ctx, spec.identifier())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		r.logger.Debug("consumer up to date", "consumer", spec.identifier(), "id", existing.ID)
		return unchanged(existing.ID), nil
	}

	consumer, _, err := r.consumers.Put(ctx, spec.identifier(), admin.ConsumerRequest{
		Username: spec.Username,
		CustomID: spec.CustomID,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("created consumer", "consumer", spec.identifier(), "id", consumer.ID)
	r.recordOperation("consumer", ActionCreated)
	return created(consumer.ID), nil
}

// DeleteConsumer removes the Consumer if it exists.
func (r *Reconciler) DeleteConsumer(ctx context.Context, spec ConsumerSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.consumers.Get(ctx, spec.identifier())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return noop(), nil
	}

	if err := r.consumers.Delete(ctx, spec.identifier()); err != nil {
		return nil, err
	}
	r.logger.Info("deleted consumer", "consumer", spec.identifier(), "id", existing.ID)
	r.recordOperation("consumer", ActionDeleted)
	return deleted(existing.ID), nil
}
