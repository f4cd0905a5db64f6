package admin

import (
	"context"
	"encoding/json"
	"net/url"
)

// ConsumersClient manages Consumer resources and their auth-type
// credential sub-resources.
type ConsumersClient struct {
	client *Client
}

// ConsumerRequest is the write payload for a Consumer. Username and
// custom id are mutually exclusive on the wire.
type ConsumerRequest struct {
	Username string `json:"username,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
}

// Get looks up a Consumer by username or id, returning nil when it does
// not exist.
func (c *ConsumersClient) Get(ctx context.Context, nameOrID string) (*Consumer, error) {
	body, err := c.client.get(ctx, []string{"consumers", nameOrID}, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	consumer := &Consumer{}
	if err := json.Unmarshal(body, consumer); err != nil {
		return nil, err
	}
	return consumer, nil
}

// List returns the first page of Consumers.
func (c *ConsumersClient) List(ctx context.Context) ([]Consumer, error) {
	page, err := c.client.list(ctx, []string{"consumers"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalConsumers(page.Data)
}

// ListAll returns every Consumer, exhausting pagination.
func (c *ConsumersClient) ListAll(ctx context.Context) ([]Consumer, error) {
	items, err := c.client.listAll(ctx, []string{"consumers"}, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalConsumers(items)
}

// Put upserts a Consumer under its username or custom id and reports
// whether the gateway created it.
func (c *ConsumersClient) Put(ctx context.Context, nameOrID string, req ConsumerRequest) (*Consumer, bool, error) {
	body, created, err := c.client.put(ctx, []string{"consumers", nameOrID}, req)
	if err != nil {
		return nil, false, err
	}
	consumer := &Consumer{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, consumer); err != nil {
			return nil, created, err
		}
	}
	return consumer, created, nil
}

func (c *ConsumersClient) Delete(ctx context.Context, nameOrID string) error {
	return c.client.delete(ctx, []string{"consumers", nameOrID})
}

// ListCredentials queries an auth-type collection under a Consumer,
// optionally filtered by the given fields.
func (c *ConsumersClient) ListCredentials(ctx context.Context, consumer, authType string, filter map[string]interface{}) ([]Credential, error) {
	query := url.Values{}
	for key, value := range filter {
		if s, ok := value.(string); ok {
			query.Set(key, s)
		}
	}
	page, err := c.client.list(ctx, []string{"consumers", consumer, authType}, query)
	if err != nil {
		return nil, err
	}
	credentials := make([]Credential, 0, len(page.Data))
	for _, item := range page.Data {
		credential := Credential{}
		if err := json.Unmarshal(item, &credential); err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}
	return credentials, nil
}

func (c *ConsumersClient) CreateCredential(ctx context.Context, consumer, authType string, config map[string]interface{}) (Credential, error) {
	body, err := c.client.post(ctx, []string{"consumers", consumer, authType}, config)
	if err != nil {
		return nil, err
	}
	credential := Credential{}
	if err := json.Unmarshal(body, &credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *ConsumersClient) UpdateCredential(ctx context.Context, consumer, authType, id string, config map[string]interface{}) (Credential, error) {
	body, err := c.client.patch(ctx, []string{"consumers", consumer, authType, id}, config)
	if err != nil {
		return nil, err
	}
	credential := Credential{}
	if err := json.Unmarshal(body, &credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *ConsumersClient) DeleteCredential(ctx context.Context, consumer, authType, id string) error {
	return c.client.delete(ctx, []string{"consumers", consumer, authType, id})
}

func unmarshalConsumers(items []json.RawMessage) ([]Consumer, error) {
	consumers := make([]Consumer, 0, len(items))
	for _, item := range items {
		consumer := Consumer{}
		if err := json.Unmarshal(item, &consumer); err != nil {
			return nil, err
		}
		consumers = append(consumers, consumer)
	}
	return consumers, nil
}
