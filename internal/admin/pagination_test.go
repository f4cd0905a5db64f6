package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatewayops/kongsync/internal/testing/gateway"
)

func TestListFirstPageOnly(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	g.SetPageSize(2)
	for i := 0; i < 5; i++ {
		g.AddService(fmt.Sprintf("service-%d", i), "upstream.internal")
	}
	client := testClient(t, g)

	services, err := client.Services().List(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
}

func TestListAllWalksCursors(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	g.SetPageSize(2)
	for i := 0; i < 5; i++ {
		g.AddService(fmt.Sprintf("service-%d", i), "upstream.internal")
	}
	client := testClient(t, g)

	services, err := client.Services().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 5)

	names := map[string]bool{}
	for _, service := range services {
		names[service.Name] = true
	}
	require.Len(t, names, 5)
}

func TestListAllRepeatedCursor(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [], "next": "/services?offset=stuck"}`))
	}))
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	client, err := CreateClient(Config{Address: parsed.Hostname(), Port: uint(port)})
	require.NoError(t, err)

	_, err = client.Services().ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "repeated")
}
