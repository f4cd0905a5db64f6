package admin

// EntityRef is how the gateway represents a reference from one resource
// to another: an object holding just the referenced id.
type EntityRef struct {
	ID string `json:"id"`
}

type Service struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	Host           string `json:"host,omitempty"`
	Port           int    `json:"port,omitempty"`
	Path           string `json:"path,omitempty"`
	Retries        int    `json:"retries,omitempty"`
	ConnectTimeout int    `json:"connect_timeout,omitempty"`
	WriteTimeout   int    `json:"write_timeout,omitempty"`
	ReadTimeout    int    `json:"read_timeout,omitempty"`
}

type Route struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Service      *EntityRef `json:"service,omitempty"`
	Hosts        []string   `json:"hosts,omitempty"`
	Paths        []string   `json:"paths,omitempty"`
	Methods      []string   `json:"methods,omitempty"`
	Protocols    []string   `json:"protocols,omitempty"`
	StripPath    bool       `json:"strip_path"`
	PreserveHost bool       `json:"preserve_host"`
}

type Consumer struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
}

// Plugin is a policy instance attached to some combination of Service,
// Route and Consumer, or globally when all three references are absent.
// The plugin type name is not unique across instances.
type Plugin struct {
	ID       string                 `json:"id,omitempty"`
	Name     string                 `json:"name,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
	Service  *EntityRef             `json:"service,omitempty"`
	Route    *EntityRef             `json:"route,omitempty"`
	Consumer *EntityRef             `json:"consumer,omitempty"`
	Enabled  *bool                  `json:"enabled,omitempty"`
}

// Credential is a consumer auth-type sub-resource. Its shape is
// free-form and depends entirely on the auth plugin it belongs to.
type Credential map[string]interface{}

func (c Credential) ID() string {
	id, _ := c["id"].(string)
	return id
}
