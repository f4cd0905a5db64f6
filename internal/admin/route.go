package admin

import (
	"context"
	"encoding/json"
)

// RoutesClient manages Route resources. Routes always belong to exactly
// one Service, so listing is scoped under a Service.
type RoutesClient struct {
	client *Client
}

// RouteRequest is the write payload for creating or patching a Route.
// The Service binding goes over the wire as a nested id object.
type RouteRequest struct {
	Name         string     `json:"name,omitempty"`
	Protocols    []string   `json:"protocols,omitempty"`
	Methods      []string   `json:"methods,omitempty"`
	Hosts        []string   `json:"hosts,omitempty"`
	Paths        []string   `json:"paths,omitempty"`
	StripPath    bool       `json:"strip_path"`
	PreserveHost bool       `json:"preserve_host"`
	Service      *EntityRef `json:"service,omitempty"`
}

// Get looks up a Route by name or id, returning nil when it does not
// exist.
func (r *RoutesClient) Get(ctx context.Context, nameOrID string) (*Route, error) {
	body, err := r.client.get(ctx, []string{"routes", nameOrID}, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	route := &Route{}
	if err := json.Unmarshal(body, route); err != nil {
		return nil, err
	}
	return route, nil
}

// ListByService returns the first page of Routes under a Service.
func (r *RoutesClient) ListByService(ctx context.Context, service string) ([]Route, error) {
	page, err := r.client.list(ctx, []string{"services", service, "routes"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalRoutes(page.Data)
}

// ListAllByService returns every Route under a Service, exhausting
// pagination.
func (r *RoutesClient) ListAllByService(ctx context.Context, service string) ([]Route, error) {
	items, err := r.client.listAll(ctx, []string{"services", service, "routes"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalRoutes(items)
}

func (r *RoutesClient) Create(ctx context.Context, req RouteRequest) (*Route, error) {
	body, err := r.client.post(ctx, []string{"routes"}, req)
	if err != nil {
		return nil, err
	}
	route := &Route{}
	if err := json.Unmarshal(body, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (r *RoutesClient) Update(ctx context.Context, id string, req RouteRequest) (*Route, error) {
	body, err := r.client.patch(ctx, []string{"routes", id}, req)
	if err != nil {
		return nil, err
	}
	route := &Route{}
	if err := json.Unmarshal(body, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (r *RoutesClient) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, []string{"routes", id})
}

func unmarshalRoutes(items []json.RawMessage) ([]Route, error) {
	routes := make([]Route, 0, len(items))
	for _, item := range items {
		route := Route{}
		if err := json.Unmarshal(item, &route); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}
