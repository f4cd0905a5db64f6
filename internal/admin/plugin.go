package admin

import (
	"context"
	"encoding/json"
)

// PluginsClient manages Plugin resources. Plugins can live at the root
// collection or scoped under the Service, Route or Consumer they are
// bound to.
type PluginsClient struct {
	client *Client
}

// Get looks up a Plugin by id, returning nil when it does not exist.
func (p *PluginsClient) Get(ctx context.Context, id string) (*Plugin, error) {
	body, err := p.client.get(ctx, []string{"plugins", id}, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	plugin := &Plugin{}
	if err := json.Unmarshal(body, plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

// ListAll returns every Plugin in the root collection, exhausting
// pagination.
func (p *PluginsClient) ListAll(ctx context.Context) ([]Plugin, error) {
	return p.listAll(ctx, []string{"plugins"})
}

// ListAllForService returns every Plugin scoped under a Service.
func (p *PluginsClient) ListAllForService(ctx context.Context, service string) ([]Plugin, error) {
	return p.listAll(ctx, []string{"services", service, "plugins"})
}

// ListAllForRoute returns every Plugin scoped under a Route.
func (p *PluginsClient) ListAllForRoute(ctx context.Context, route string) ([]Plugin, error) {
	return p.listAll(ctx, []string{"routes", route, "plugins"})
}

// ListAllForConsumer returns every Plugin scoped under a Consumer.
func (p *PluginsClient) ListAllForConsumer(ctx context.Context, consumer string) ([]Plugin, error) {
	return p.listAll(ctx, []string{"consumers", consumer, "plugins"})
}

// Create posts a flattened Plugin payload to the root collection. The
// payload uses the admin API's flattened-key convention: config entries
// as "config.<key>" and bindings as "<relation>.id".
func (p *PluginsClient) Create(ctx context.Context, payload map[string]interface{}) (*Plugin, error) {
	body, err := p.client.post(ctx, []string{"plugins"}, payload)
	if err != nil {
		return nil, err
	}
	plugin := &Plugin{}
	if err := json.Unmarshal(body, plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

// Update patches an existing Plugin in place with a flattened payload.
func (p *PluginsClient) Update(ctx context.Context, id string, payload map[string]interface{}) (*Plugin, error) {
	body, err := p.client.patch(ctx, []string{"plugins", id}, payload)
	if err != nil {
		return nil, err
	}
	plugin := &Plugin{}
	if err := json.Unmarshal(body, plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

func (p *PluginsClient) Delete(ctx context.Context, id string) error {
	return p.client.delete(ctx, []string{"plugins", id})
}

func (p *PluginsClient) listAll(ctx context.Context, segments []string) ([]Plugin, error) {
	items, err := p.client.listAll(ctx, segments, nil)
	if err != nil {
		return nil, err
	}
	plugins := make([]Plugin, 0, len(items))
	for _, item := range items {
		plugin := Plugin{}
		if err := json.Unmarshal(item, &plugin); err != nil {
			return nil, err
		}
		plugins = append(plugins, plugin)
	}
	return plugins, nil
}

// FlattenConfig prefixes every config key with "config." for the
// flattened-key write convention. The plugin endpoint does not accept a
// nested config object in this form.
func FlattenConfig(config map[string]interface{}) map[string]interface{} {
	flattened := make(map[string]interface{}, len(config))
	for key, value := range config {
		flattened["config."+key] = value
	}
	return flattened
}
