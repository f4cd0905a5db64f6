package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewayops/kongsync/internal/testing/gateway"
)

func testClient(t *testing.T, g *gateway.Gateway) *Client {
	t.Helper()

	address, port := g.Address(t)
	client, err := CreateClient(Config{Address: address, Port: port})
	require.NoError(t, err)
	return client
}

func TestCreateClientValidation(t *testing.T) {
	t.Parallel()

	_, err := CreateClient(Config{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "address")
}

func TestCreateClientDefaults(t *testing.T) {
	t.Parallel()

	client, err := CreateClient(Config{Address: "localhost"})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8001", client.baseURL)

	client, err = CreateClient(Config{Address: "localhost", Port: 9001, TLSConfiguration: &TLSConfiguration{SkipVerification: true}})
	require.NoError(t, err)
	require.Equal(t, "https://localhost:9001", client.baseURL)
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	client, err := CreateClient(Config{Address: "localhost"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8001/services/web", client.buildURL([]string{"services", "web"}))
	// empty segments are skipped rather than producing double slashes
	assert.Equal(t, "http://localhost:8001/consumers/alice/basic-auth", client.buildURL([]string{"consumers", "alice", "", "basic-auth"}))
	assert.Equal(t, "http://localhost:8001", client.buildURL(nil))
}

func TestClientCredentialHeaders(t *testing.T) {
	t.Parallel()

	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	client, err := CreateClient(Config{
		Address:  parsed.Hostname(),
		Port:     uint(port),
		Username: "kong_admin",
		Password: "hunter2",
	})
	require.NoError(t, err)

	_, err = client.Services().Get(context.Background(), "web")
	require.NoError(t, err)
	require.NotNil(t, captured)

	username, password, ok := captured.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "kong_admin", username)
	assert.Equal(t, "hunter2", password)
	// the basic auth password doubles as the RBAC token when no
	// explicit token is configured
	assert.Equal(t, "hunter2", captured.Header.Get("Kong-Admin-Token"))

	client, err = CreateClient(Config{
		Address:  parsed.Hostname(),
		Port:     uint(port),
		Username: "kong_admin",
		Password: "hunter2",
		Token:    "rbac-token",
	})
	require.NoError(t, err)

	_, err = client.Services().Get(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, "rbac-token", captured.Header.Get("Kong-Admin-Token"))
}

func TestGetMissingService(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	client := testClient(t, g)

	service, err := client.Services().Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.Nil(t, service)
}

func TestDeleteMissingService(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	client := testClient(t, g)

	err := client.Services().Delete(context.Background(), "nonexistent")
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}

func TestServiceRoundTrip(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	client := testClient(t, g)
	ctx := context.Background()

	created, err := client.Services().Create(ctx, ServiceRequest{Name: "web", Host: "web.internal"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "web", created.Name)

	fetched, err := client.Services().Get(ctx, "web")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "web.internal", fetched.Host)

	updated, err := client.Services().Update(ctx, "web", ServiceRequest{Name: "web", Host: "web2.internal"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "web2.internal", updated.Host)

	require.NoError(t, client.Services().Delete(ctx, "web"))

	fetched, err = client.Services().Get(ctx, "web")
	require.NoError(t, err)
	require.Nil(t, fetched)
}

func TestConsumerPut(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	client := testClient(t, g)
	ctx := context.Background()

	consumer, created, err := client.Consumers().Put(ctx, "alice", ConsumerRequest{Username: "alice"})
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, consumer.ID)

	again, created, err := client.Consumers().Put(ctx, "alice", ConsumerRequest{Username: "alice"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, consumer.ID, again.ID)
}
