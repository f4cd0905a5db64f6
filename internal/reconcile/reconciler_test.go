package reconcile

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/gatewayops/kongsync/internal/admin"
	"github.com/gatewayops/kongsync/internal/testing/gateway"
)

func testReconciler(t *testing.T) (*gateway.Gateway, *Reconciler) {
	t.Helper()

	g := gateway.TestGateway(t)
	address, port := g.Address(t)
	client, err := admin.CreateClient(admin.Config{Address: address, Port: port})
	require.NoError(t, err)
	return g, New(client, hclog.NewNullLogger())
}

func intPtr(i int) *int {
	return &i
}
