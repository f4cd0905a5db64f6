package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRouteValidation(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)

	_, err := r.ApplyRoute(context.Background(), RouteSpec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service")
	assert.Contains(t, err.Error(), "at least one of")
}

func TestApplyRouteUnresolvedService(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)

	_, err := r.ApplyRoute(context.Background(), RouteSpec{
		Service: "nonexistent",
		Paths:   []string{"/api"},
	})
	require.Error(t, err)
	require.True(t, IsValidationError(err))
	require.Contains(t, err.Error(), "has it been created?")
}

func TestApplyRouteLifecycle(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyService(ctx, ServiceSpec{Name: "web", Host: "web.internal"})
	require.NoError(t, err)

	spec := RouteSpec{
		Service: "web",
		Hosts:   []string{"a.example.com", "b.example.com"},
		Paths:   []string{"/api"},
	}

	result, err := r.ApplyRoute(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionCreated, result.Action)
	id := result.ID

	result, err = r.ApplyRoute(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Equal(t, id, result.ID)

	// the matching sets compare order-independently
	reordered := spec
	reordered.Hosts = []string{"b.example.com", "a.example.com"}
	result, err = r.ApplyRoute(ctx, reordered)
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Equal(t, id, result.ID)

	// a drifted flag outside the matching sets patches in place
	flagged := spec
	flagged.StripPath = true
	result, err = r.ApplyRoute(ctx, flagged)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionUpdated, result.Action)
	require.Equal(t, id, result.ID)
}

func TestApplyRouteDistinctSetsCreate(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyService(ctx, ServiceSpec{Name: "web", Host: "web.internal"})
	require.NoError(t, err)

	first, err := r.ApplyRoute(ctx, RouteSpec{Service: "web", Paths: []string{"/api"}})
	require.NoError(t, err)

	second, err := r.ApplyRoute(ctx, RouteSpec{Service: "web", Paths: []string{"/admin"}})
	require.NoError(t, err)
	require.True(t, second.Changed)
	require.Equal(t, ActionCreated, second.Action)
	require.NotEqual(t, first.ID, second.ID)
}

func TestApplyRouteAmbiguity(t *testing.T) {
	t.Parallel()

	g, r := testReconciler(t)
	ctx := context.Background()

	serviceID := g.AddService("web", "web.internal")
	fields := map[string]interface{}{"paths": []string{"/api"}}
	g.AddRoute(serviceID, fields)
	g.AddRoute(serviceID, fields)

	_, err := r.ApplyRoute(ctx, RouteSpec{Service: "web", Paths: []string{"/api"}})
	require.Error(t, err)
	require.True(t, IsAmbiguityError(err))
	require.Contains(t, err.Error(), "clean up manually first")
}

func TestDeleteRoute(t *testing.T) {
	t.Parallel()

	_, r := testReconciler(t)
	ctx := context.Background()

	_, err := r.ApplyService(ctx, ServiceSpec{Name: "web", Host: "web.internal"})
	require.NoError(t, err)

	spec := RouteSpec{Service: "web", Paths: []string{"/api"}}

	result, err := r.DeleteRoute(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)

	applied, err := r.ApplyRoute(ctx, spec)
	require.NoError(t, err)

	result, err = r.DeleteRoute(ctx, spec)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, ActionDeleted, result.Action)
	require.Equal(t, applied.ID, result.ID)

	result, err = r.DeleteRoute(ctx, spec)
	require.NoError(t, err)
	require.False(t, result.Changed)
}
