package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPluginValidation(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)

	_, err := r.ApplyPlugin(context.Background(), PluginSpec{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "plugin name")
}

func TestApplyPluginGlobal(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	spec := PluginSpec{
		Name:   "rate-limiting",
		Config: map[string]interface{}{"minute": 5, "policy": "local"},
	}

	result, err := r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionCreated, result.Action)
	id := result.ID

	result, err = r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Equal(t, id, result.ID)

	spec.Config["minute"] = 10
	result, err = r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionUpdated, result.Action)
	require.Equal(t, id, result.ID)
}

func TestApplyPluginServiceScoped(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	serviceID := g.AddService("web", "web.internal")

	spec := PluginSpec{
		Name:    "rate-limiting",
		Service: "web",
		Config:  map[string]interface{}{"minute": 5},
	}

	result, err := r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)

	// the write payload carried the resolved binding and the
	// flattened config keys expanded back into nested form
	stored := g.Plugin(result.ID)
	require.NotNil(t, stored)
	service, ok := stored["service"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, serviceID, service["id"])
	config, ok := stored["config"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 5, config["minute"])

	result, err = r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestApplyPluginBindingSymmetry(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	consumerID := g.AddConsumer("alice")
	g.AddPlugin("key-auth", "", "", consumerID, nil)

	// a consumer-bound instance never satisfies an unbound spec of
	// the same plugin type
	result, err := r.ApplyPlugin(ctx, PluginSpec{Name: "key-auth"})
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionCreated, result.Action)

	result, err = r.ApplyPlugin(ctx, PluginSpec{Name: "key-auth"})
	require.NoError(t, err)
	require.False(t, result.Changed)

	result, err = r.ApplyPlugin(ctx, PluginSpec{Name: "key-auth", Consumer: "alice"})
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestApplyPluginAmbiguity(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	g.AddPlugin("rate-limiting", "", "", "", map[string]interface{}{"minute": 5})
	g.AddPlugin("rate-limiting", "", "", "", map[string]interface{}{"minute": 10})

	_, err := r.ApplyPlugin(ctx, PluginSpec{Name: "rate-limiting"})
	require.Error(t, err)
	require.True(t, IsAmbiguityError(err))
	require.Contains(t, err.Error(), "rate-limiting")
	require.Contains(t, err.Error(), "clean up manually first")
}

func TestApplyPluginUnresolvedBinding(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)

	_, err := r.ApplyPlugin(context.Background(), PluginSpec{
		Name:    "rate-limiting",
		Service: "nonexistent",
	})
	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestDeletePlugin(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	spec := PluginSpec{Name: "rate-limiting", Config: map[string]interface{}{"minute": 5}}

	result, err := r.DeletePlugin(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)

	applied, err := r.ApplyPlugin(ctx, spec)
	require.NoError(t, err)

	result, err = r.DeletePlugin(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionDeleted, result.Action)
	require.Equal(t, applied.ID, result.ID)
}

func TestQueryPlugins(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	serviceID := g.AddService("web", "web.internal")
	boundID := g.AddPlugin("rate-limiting", serviceID, "", "", nil)
	g.AddPlugin("rate-limiting", "", "", "", nil)

	matches, err := r.QueryPlugins(ctx, PluginSpec{Name: "rate-limiting", Service: "web"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, boundID, matches[0].ID)
}
