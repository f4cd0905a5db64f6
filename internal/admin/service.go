package admin

import (
	"context"
	"encoding/json"
)

// ServicesClient manages Service resources.
type ServicesClient struct {
	client *Client
}

// ServiceRequest is the write payload for creating or patching a
// Service. Optional numeric fields are pointers so that zero values can
// be omitted from the wire payload.
type ServiceRequest struct {
	Name           string `json:"name"`
	Host           string `json:"host"`
	Protocol       string `json:"protocol,omitempty"`
	Port           *int   `json:"port,omitempty"`
	Path           string `json:"path,omitempty"`
	Retries        *int   `json:"retries,omitempty"`
	ConnectTimeout *int   `json:"connect_timeout,omitempty"`
	WriteTimeout   *int   `json:"write_timeout,omitempty"`
	ReadTimeout    *int   `json:"read_timeout,omitempty"`
}

// Get looks up a Service by name or id. A missing Service is reported
// as a nil result, not an error.
func (s *ServicesClient) Get(ctx context.Context, nameOrID string) (*Service, error) {
	body, err := s.client.get(ctx, []string{"services", nameOrID}, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	service := &Service{}
	if err := json.Unmarshal(body, service); err != nil {
		return nil, err
	}
	return service, nil
}

// List returns the first page of Services.
func (s *ServicesClient) List(ctx context.Context) ([]Service, error) {
	page, err := s.client.list(ctx, []string{"services"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalServices(page.Data)
}

// ListAll returns every configured Service, exhausting pagination.
func (s *ServicesClient) ListAll(ctx context.Context) ([]Service, error) {
	items, err := s.client.listAll(ctx, []string{"services"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalServices(items)
}

func (s *ServicesClient) Create(ctx context.Context, req ServiceRequest) (*Service, error) {
	body, err := s.client.post(ctx, []string{"services"}, req)
	if err != nil {
		return nil, err
	}
	service := &Service{}
	if err := json.Unmarshal(body, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *ServicesClient) Update(ctx context.Context, nameOrID string, req ServiceRequest) (*Service, error) {
	body, err := s.client.patch(ctx, []string{"services", nameOrID}, req)
	if err != nil {
		return nil, err
	}
	service := &Service{}
	if err := json.Unmarshal(body, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *ServicesClient) Delete(ctx context.Context, nameOrID string) error {
	return s.client.delete(ctx, []string{"services", nameOrID})
}

func unmarshalServices(items []json.RawMessage) ([]Service, error) {
	services := make([]Service, 0, len(items))
	for _, item := range items {
		service := Service{}
		if err := json.Unmarshal(item, &service); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, nil
}
