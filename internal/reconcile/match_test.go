package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatewayops/kongsync/internal/admin"
)

func TestStringSetEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, stringSetEqual(nil, nil))
	assert.True(t, stringSetEqual(nil, []string{}))
	assert.True(t, stringSetEqual([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, stringSetEqual([]string{"a"}, []string{"a", "b"}))
	assert.False(t, stringSetEqual([]string{"a", "b"}, []string{"a", "c"}))
}

func TestRouteMatches(t *testing.T) {
	t.Parallel()

	route := admin.Route{
		Hosts: []string{"a.example.com", "b.example.com"},
		Paths: []string{"/api"},
	}

	assert.True(t, routeMatches(route, RouteSpec{
		Hosts: []string{"b.example.com", "a.example.com"},
		Paths: []string{"/api"},
	}))
	assert.False(t, routeMatches(route, RouteSpec{
		Hosts: []string{"a.example.com"},
		Paths: []string{"/api"},
	}))
	// an absent field only matches an absent field
	assert.False(t, routeMatches(route, RouteSpec{
		Hosts: []string{"a.example.com", "b.example.com"},
	}))
}

func TestBindingMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, bindingMatches(nil, ""))
	assert.True(t, bindingMatches(&admin.EntityRef{ID: "abc"}, "abc"))
	assert.False(t, bindingMatches(&admin.EntityRef{ID: "abc"}, ""))
	assert.False(t, bindingMatches(nil, "abc"))
	assert.False(t, bindingMatches(&admin.EntityRef{ID: "abc"}, "def"))
}

func TestPluginMatches(t *testing.T) {
	t.Parallel()

	plugin := admin.Plugin{
		Name:     "key-auth",
		Consumer: &admin.EntityRef{ID: "consumer-1"},
	}

	assert.True(t, pluginMatches(plugin, "key-auth", bindings{consumer: "consumer-1"}))
	assert.False(t, pluginMatches(plugin, "key-auth", bindings{}))
	assert.False(t, pluginMatches(plugin, "rate-limiting", bindings{consumer: "consumer-1"}))
	assert.False(t, pluginMatches(plugin, "key-auth", bindings{consumer: "consumer-1", service: "service-1"}))
}

func TestConfigUpToDate(t *testing.T) {
	t.Parallel()

	existing := map[string]interface{}{
		"minute": float64(5),
		"policy": "local",
		"limit":  float64(100),
	}

	// YAML-decoded ints compare equal to wire-decoded floats
	assert.True(t, configUpToDate(existing, map[string]interface{}{"minute": 5}))
	assert.True(t, configUpToDate(existing, nil))
	assert.False(t, configUpToDate(existing, map[string]interface{}{"minute": 10}))
	assert.False(t, configUpToDate(existing, map[string]interface{}{"unset": "value"}))

	nested := map[string]interface{}{
		"redis": map[string]interface{}{"host": "cache.internal", "port": float64(6379)},
	}
	assert.True(t, configUpToDate(nested, map[string]interface{}{
		"redis": map[string]interface{}{"host": "cache.internal", "port": 6379},
	}))
}
