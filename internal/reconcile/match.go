package reconcile

import (
	"encoding/json"
	"sort"

	"github.com/gatewayops/kongsync/internal/admin"
)

// stringSetEqual compares two string slices as sets, order-independent.
// A nil slice and an empty slice are the same set.
func stringSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sortedA := append([]string(nil), a...)
	sortedB := append([]string(nil), b...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)
	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}
	return true
}

// routeMatches reports whether an existing Route is logically the same
// as the desired sets. Absent fields count as empty sets.
func routeMatches(route admin.Route, spec RouteSpec) bool {
	return stringSetEqual(route.Hosts, spec.Hosts) &&
		stringSetEqual(route.Paths, spec.Paths) &&
		stringSetEqual(route.Methods, spec.Methods) &&
		stringSetEqual(route.Protocols, spec.Protocols)
}

func matchRoutes(routes []admin.Route, spec RouteSpec) []admin.Route {
	matches := []admin.Route{}
	for _, route := range routes {
		if routeMatches(route, spec) {
			matches = append(matches, route)
		}
	}
	return matches
}

// bindingMatches enforces presence symmetry: the existing reference
// must be present exactly when an id was resolved for the query, and
// where present the ids must agree. A Plugin bound to some consumer is
// never equivalent to an unbound desired state.
func bindingMatches(ref *admin.EntityRef, resolved string) bool {
	if (ref != nil) != (resolved != "") {
		return false
	}
	if ref != nil && ref.ID != resolved {
		return false
	}
	return true
}

// pluginMatches reports whether an existing Plugin instance carries the
// desired type name and binding tuple. Config contents are not part of
// the logical key.
func pluginMatches(plugin admin.Plugin, name string, b bindings) bool {
	if plugin.Name != name {
		return false
	}
	return bindingMatches(plugin.Service, b.service) &&
		bindingMatches(plugin.Route, b.route) &&
		bindingMatches(plugin.Consumer, b.consumer)
}

func matchPlugins(plugins []admin.Plugin, name string, b bindings) []admin.Plugin {
	matches := []admin.Plugin{}
	for _, plugin := range plugins {
		if pluginMatches(plugin, name, b) {
			matches = append(matches, plugin)
		}
	}
	return matches
}

// jsonEqual compares two values by their canonical JSON encoding. The
// desired state comes from YAML and the existing state from the wire,
// so numeric types rarely line up for a direct comparison.
func jsonEqual(a, b interface{}) bool {
	encodedA, errA := json.Marshal(a)
	encodedB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(encodedA) == string(encodedB)
}

// configUpToDate reports whether every desired config entry already has
// the desired value on the existing resource. Keys the desired state
// does not mention are left to the gateway's defaults and not compared.
func configUpToDate(existing, desired map[string]interface{}) bool {
	for key, value := range desired {
		if !jsonEqual(existing[key], value) {
			return false
		}
	}
	return true
}
