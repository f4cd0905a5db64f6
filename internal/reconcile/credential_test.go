package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyCredentialUnresolvedConsumer(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)

	_, err := r.ApplyCredential(context.Background(), CredentialSpec{
		Consumer: "nonexistent",
		Type:     "key-auth",
		Config:   map[string]interface{}{"key": "secret"},
	})
	require.Error(t, err)
	require.True(t, IsValidationError(err))
	require.Contains(t, err.Error(), "has it been created?")
}

func TestApplyCredentialImmutableType(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyConsumer(ctx, ConsumerSpec{Username: "alice"})
	require.NoError(t, err)

	spec := CredentialSpec{
		Consumer: "alice",
		Type:     "key-auth",
		Config:   map[string]interface{}{"key": "secret"},
	}

	result, err := r.ApplyCredential(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionCreated, result.Action)
	id := result.ID

	// an existing match of an immutable auth type is left alone
	result, err = r.ApplyCredential(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Equal(t, id, result.ID)
}

func TestApplyCredentialBasicAuth(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyConsumer(ctx, ConsumerSpec{Username: "alice"})
	require.NoError(t, err)

	spec := CredentialSpec{
		Consumer: "alice",
		Type:     "basic-auth",
		Config:   map[string]interface{}{"username": "alice", "password": "hunter2"},
	}

	result, err := r.ApplyCredential(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionCreated, result.Action)
	id := result.ID

	// basic-auth passwords hash on the gateway, so reapplies patch
	// the matched credential instead of comparing config
	spec.Config["password"] = "correct-horse"
	result, err = r.ApplyCredential(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionUpdated, result.Action)
	require.Equal(t, id, result.ID)
}

func TestApplyCredentialAmbiguity(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	g.AddConsumer("alice")

	spec := CredentialSpec{
		Consumer: "alice",
		Type:     "key-auth",
		Config:   map[string]interface{}{"key": "secret"},
	}

	_, err := r.ApplyCredential(ctx, spec)
	require.NoError(t, err)
	_, err = r.consumers.CreateCredential(ctx, "alice", "key-auth", spec.Config)
	require.NoError(t, err)

	_, err = r.ApplyCredential(ctx, spec)
	require.Error(t, err)
	require.True(t, IsAmbiguityError(err))
}

func TestDeleteCredential(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyConsumer(ctx, ConsumerSpec{Username: "alice"})
	require.NoError(t, err)

	spec := CredentialSpec{
		Consumer: "alice",
		Type:     "key-auth",
		Config:   map[string]interface{}{"key": "secret"},
	}

	result, err := r.DeleteCredential(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)

	applied, err := r.ApplyCredential(ctx, spec)
	require.NoError(t, err)

	result, err = r.DeleteCredential(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionDeleted, result.Action)
	require.Equal(t, applied.ID, result.ID)
}
