// Package gateway provides an in-memory stand-in for the Kong Admin
// API, backing client, reconciler and CLI tests without a running
// gateway.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type resource = map[string]interface{}

type Gateway struct {
	URL string

	server *httptest.Server

	mutex       sync.Mutex
	pageSize    int
	version     string
	dbReachable bool
	services    []resource
	routes      []resource
	consumers   []resource
	plugins     []resource
	credentials map[string][]resource
}

func TestGateway(t *testing.T) *Gateway {
	t.Helper()

	g := &Gateway{
		pageSize:    100,
		version:     "3.4.0",
		dbReachable: true,
		credentials: make(map[string][]resource),
	}
	g.server = httptest.NewServer(g)
	g.URL = g.server.URL
	t.Cleanup(g.server.Close)
	return g
}

// SetPageSize shrinks list pages to force cursor walks.
func (g *Gateway) SetPageSize(size int) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.pageSize = size
}

func (g *Gateway) SetVersion(version string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.version = version
}

func (g *Gateway) SetDatabaseReachable(reachable bool) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.dbReachable = reachable
}

// Address returns the host and port the fake gateway listens on.
func (g *Gateway) Address(t *testing.T) (string, uint) {
	t.Helper()

	parsed, err := url.Parse(g.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return parsed.Hostname(), uint(port)
}

// AddService seeds a Service and returns its id.
func (g *Gateway) AddService(name, host string) string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := uuid.New().String()
	g.services = append(g.services, resource{
		"id":   id,
		"name": name,
		"host": host,
	})
	return id
}

// AddRoute seeds a Route bound to the given Service id and returns its
// id.
func (g *Gateway) AddRoute(serviceID string, fields resource) string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := uuid.New().String()
	route := resource{
		"id":      id,
		"service": resource{"id": serviceID},
	}
	for key, value := range fields {
		route[key] = value
	}
	g.routes = append(g.routes, route)
	return id
}

// AddConsumer seeds a Consumer and returns its id.
func (g *Gateway) AddConsumer(username string) string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := uuid.New().String()
	g.consumers = append(g.consumers, resource{
		"id":       id,
		"username": username,
	})
	return id
}

// AddPlugin seeds a Plugin directly, bypassing the API. Duplicate
// logical keys can be injected this way to simulate ambiguous state.
func (g *Gateway) AddPlugin(name string, serviceID, routeID, consumerID string, config resource) string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := uuid.New().String()
	plugin := resource{
		"id":   id,
		"name": name,
	}
	if config != nil {
		plugin["config"] = config
	}
	if serviceID != "" {
		plugin["service"] = resource{"id": serviceID}
	}
	if routeID != "" {
		plugin["route"] = resource{"id": routeID}
	}
	if consumerID != "" {
		plugin["consumer"] = resource{"id": consumerID}
	}
	g.plugins = append(g.plugins, plugin)
	return id
}

// Plugin returns a seeded or created Plugin by id.
func (g *Gateway) Plugin(id string) resource {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return findResource(g.plugins, id)
}

// Route returns a seeded or created Route by id.
func (g *Gateway) Route(id string) resource {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return findResource(g.routes, id)
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	segments := splitPath(r.URL.Path)
	switch {
	case len(segments) == 0:
		sendJSON(w, http.StatusOK, resource{
			"version": g.version,
			"tagline": "Welcome to kong",
		})
	case segments[0] == "status" && len(segments) == 1:
		sendJSON(w, http.StatusOK, resource{
			"database": resource{"reachable": g.dbReachable},
		})
	case segments[0] == "services":
		g.handleServices(w, r, segments[1:])
	case segments[0] == "routes":
		g.handleRoutes(w, r, segments[1:])
	case segments[0] == "consumers":
		g.handleConsumers(w, r, segments[1:])
	case segments[0] == "plugins":
		g.handlePlugins(w, r, segments[1:])
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

func (g *Gateway) handleServices(w http.ResponseWriter, r *http.Request, segments []string) {
	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		g.sendPage(w, r, "/services", g.services)
	case len(segments) == 0 && r.Method == http.MethodPost:
		service := decodeBody(r)
		service["id"] = uuid.New().String()
		g.services = append(g.services, service)
		sendJSON(w, http.StatusCreated, service)
	case len(segments) == 1:
		service := findNamedResource(g.services, "name", segments[0])
		switch {
		case service == nil:
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		case r.Method == http.MethodGet:
			sendJSON(w, http.StatusOK, service)
		case r.Method == http.MethodPatch:
			mergeResource(service, decodeBody(r))
			sendJSON(w, http.StatusOK, service)
		case r.Method == http.MethodDelete:
			g.services = removeResource(g.services, service)
			w.WriteHeader(http.StatusNoContent)
		}
	case len(segments) == 2 && segments[1] == "routes":
		service := findNamedResource(g.services, "name", segments[0])
		if service == nil {
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
			return
		}
		g.sendPage(w, r, "/services/"+segments[0]+"/routes", filterByRef(g.routes, "service", service["id"].(string)))
	case len(segments) == 2 && segments[1] == "plugins":
		service := findNamedResource(g.services, "name", segments[0])
		if service == nil {
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
			return
		}
		g.sendPage(w, r, "/services/"+segments[0]+"/plugins", filterByRef(g.plugins, "service", service["id"].(string)))
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

func (g *Gateway) handleRoutes(w http.ResponseWriter, r *http.Request, segments []string) {
	switch {
	case len(segments) == 0 && r.Method == http.MethodPost:
		route := decodeBody(r)
		route["id"] = uuid.New().String()
		g.routes = append(g.routes, route)
		sendJSON(w, http.StatusCreated, route)
	case len(segments) == 1:
		route := findNamedResource(g.routes, "name", segments[0])
		switch {
		case route == nil:
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		case r.Method == http.MethodGet:
			sendJSON(w, http.StatusOK, route)
		case r.Method == http.MethodPatch:
			mergeResource(route, decodeBody(r))
			sendJSON(w, http.StatusOK, route)
		case r.Method == http.MethodDelete:
			g.routes = removeResource(g.routes, route)
			w.WriteHeader(http.StatusNoContent)
		}
	case len(segments) == 2 && segments[1] == "plugins":
		route := findNamedResource(g.routes, "name", segments[0])
		if route == nil {
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
			return
		}
		g.sendPage(w, r, "/routes/"+segments[0]+"/plugins", filterByRef(g.plugins, "route", route["id"].(string)))
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

func (g *Gateway) findConsumer(nameOrID string) resource {
	for _, consumer := range g.consumers {
		if consumer["username"] == nameOrID || consumer["custom_id"] == nameOrID || consumer["id"] == nameOrID {
			return consumer
		}
	}
	return nil
}

func (g *Gateway) handleConsumers(w http.ResponseWriter, r *http.Request, segments []string) {
	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		g.sendPage(w, r, "/consumers", g.consumers)
	case len(segments) == 1:
		consumer := g.findConsumer(segments[0])
		switch {
		case r.Method == http.MethodPut:
			if consumer != nil {
				sendJSON(w, http.StatusOK, consumer)
				return
			}
			consumer = decodeBody(r)
			consumer["id"] = uuid.New().String()
			g.consumers = append(g.consumers, consumer)
			sendJSON(w, http.StatusCreated, consumer)
		case consumer == nil:
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		case r.Method == http.MethodGet:
			sendJSON(w, http.StatusOK, consumer)
		case r.Method == http.MethodDelete:
			g.consumers = removeResource(g.consumers, consumer)
			w.WriteHeader(http.StatusNoContent)
		}
	case len(segments) == 2 && segments[1] == "plugins":
		consumer := g.findConsumer(segments[0])
		if consumer == nil {
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
			return
		}
		g.sendPage(w, r, "/consumers/"+segments[0]+"/plugins", filterByRef(g.plugins, "consumer", consumer["id"].(string)))
	case len(segments) == 2:
		g.handleCredentials(w, r, segments[0], segments[1], "")
	case len(segments) == 3:
		g.handleCredentials(w, r, segments[0], segments[1], segments[2])
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

func (g *Gateway) handleCredentials(w http.ResponseWriter, r *http.Request, consumer, authType, id string) {
	if g.findConsumer(consumer) == nil {
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		return
	}
	key := consumer + "/" + authType

	switch {
	case id == "" && r.Method == http.MethodGet:
		matches := []resource{}
		for _, credential := range g.credentials[key] {
			matched := true
			for field, want := range r.URL.Query() {
				if field == "offset" || field == "size" {
					continue
				}
				if got, _ := credential[field].(string); got != want[0] {
					matched = false
				}
			}
			if matched {
				matches = append(matches, credential)
			}
		}
		g.sendPage(w, r, "/consumers/"+key, matches)
	case id == "" && r.Method == http.MethodPost:
		credential := decodeBody(r)
		credential["id"] = uuid.New().String()
		g.credentials[key] = append(g.credentials[key], credential)
		sendJSON(w, http.StatusCreated, credential)
	case id != "":
		credential := findResource(g.credentials[key], id)
		switch {
		case credential == nil:
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		case r.Method == http.MethodPatch:
			mergeResource(credential, decodeBody(r))
			sendJSON(w, http.StatusOK, credential)
		case r.Method == http.MethodDelete:
			g.credentials[key] = removeResource(g.credentials[key], credential)
			w.WriteHeader(http.StatusNoContent)
		}
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

func (g *Gateway) handlePlugins(w http.ResponseWriter, r *http.Request, segments []string) {
	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		g.sendPage(w, r, "/plugins", g.plugins)
	case len(segments) == 0 && r.Method == http.MethodPost:
		plugin := unflattenPlugin(decodeBody(r))
		plugin["id"] = uuid.New().String()
		g.plugins = append(g.plugins, plugin)
		sendJSON(w, http.StatusCreated, plugin)
	case len(segments) == 1:
		plugin := findResource(g.plugins, segments[0])
		switch {
		case plugin == nil:
			sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
		case r.Method == http.MethodGet:
			sendJSON(w, http.StatusOK, plugin)
		case r.Method == http.MethodPatch:
			mergePlugin(plugin, unflattenPlugin(decodeBody(r)))
			sendJSON(w, http.StatusOK, plugin)
		case r.Method == http.MethodDelete:
			g.plugins = removeResource(g.plugins, plugin)
			w.WriteHeader(http.StatusNoContent)
		}
	default:
		sendJSON(w, http.StatusNotFound, resource{"message": "Not found"})
	}
}

// sendPage slices items into pages of pageSize and emits the next
// cursor as a relative path the way the admin API does.
func (g *Gateway) sendPage(w http.ResponseWriter, r *http.Request, path string, items []resource) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, _ = strconv.Atoi(raw)
	}
	if offset > len(items) {
		offset = len(items)
	}

	end := offset + g.pageSize
	next := ""
	if end < len(items) {
		next = fmt.Sprintf("%s?offset=%d", path, end)
	} else {
		end = len(items)
	}

	page := resource{"data": items[offset:end]}
	if next != "" {
		page["next"] = next
	} else {
		page["next"] = nil
	}
	sendJSON(w, http.StatusOK, page)
}

// unflattenPlugin converts the flattened-key write convention back into
// the nested read representation.
func unflattenPlugin(payload resource) resource {
	plugin := resource{}
	config := resource{}
	for key, value := range payload {
		switch {
		case strings.HasPrefix(key, "config."):
			config[strings.TrimPrefix(key, "config.")] = value
		case key == "service.id":
			plugin["service"] = resource{"id": value}
		case key == "route.id":
			plugin["route"] = resource{"id": value}
		case key == "consumer.id":
			plugin["consumer"] = resource{"id": value}
		default:
			plugin[key] = value
		}
	}
	if len(config) > 0 {
		plugin["config"] = config
	}
	return plugin
}

func mergePlugin(existing, update resource) {
	for key, value := range update {
		if key == "config" {
			config, ok := existing["config"].(resource)
			if !ok {
				config = resource{}
			}
			for configKey, configValue := range value.(resource) {
				config[configKey] = configValue
			}
			existing["config"] = config
			continue
		}
		existing[key] = value
	}
}

func mergeResource(existing, update resource) {
	for key, value := range update {
		existing[key] = value
	}
}

func decodeBody(r *http.Request) resource {
	body := resource{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func findResource(items []resource, id string) resource {
	for _, item := range items {
		if item["id"] == id {
			return item
		}
	}
	return nil
}

// findNamedResource looks an item up by its unique name field or by id.
func findNamedResource(items []resource, field, nameOrID string) resource {
	for _, item := range items {
		if item[field] == nameOrID || item["id"] == nameOrID {
			return item
		}
	}
	return nil
}

func filterByRef(items []resource, relation, id string) []resource {
	matches := []resource{}
	for _, item := range items {
		ref, ok := item[relation].(resource)
		if ok && ref["id"] == id {
			matches = append(matches, item)
		}
	}
	return matches
}

func removeResource(items []resource, target resource) []resource {
	remaining := make([]resource, 0, len(items))
	for _, item := range items {
		if item["id"] != target["id"] {
			remaining = append(remaining, item)
		}
	}
	return remaining
}
