package admin

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gatewayops/kongsync/internal/metrics"
)

const (
	defaultPort = 8001

	// Header used by Kong Enterprise for RBAC-protected admin endpoints.
	adminTokenHeader = "Kong-Admin-Token"
)

type TLSConfiguration struct {
	CAFile           string
	SkipVerification bool
}

type Config struct {
	Address string
	Port    uint

	// Token is sent in the Kong-Admin-Token header. Username and
	// Password configure HTTP basic auth. Both mechanisms are sent
	// when both are configured; the gateway decides which it honors.
	Token    string
	Username string
	Password string

	TLSConfiguration *TLSConfiguration

	Logger     hclog.Logger
	HTTPClient *http.Client
}

// Client speaks to the Kong Admin API. It is stateless between calls
// aside from the credentials captured at construction.
type Client struct {
	baseURL  string
	token    string
	username string
	password string

	client *http.Client
	logger hclog.Logger

	services  *ServicesClient
	routes    *RoutesClient
	consumers *ConsumersClient
	plugins   *PluginsClient
}

func CreateClient(config Config) (*Client, error) {
	if config.Address == "" {
		return nil, fmt.Errorf("must specify an address value")
	}

	scheme := "http"
	httpClient := config.HTTPClient
	if config.TLSConfiguration != nil {
		scheme = "https"
		if httpClient == nil {
			tlsConfig := &tls.Config{
				InsecureSkipVerify: config.TLSConfiguration.SkipVerification,
			}
			if config.TLSConfiguration.CAFile != "" {
				pem, err := os.ReadFile(config.TLSConfiguration.CAFile)
				if err != nil {
					return nil, fmt.Errorf("reading CA file: %w", err)
				}
				pool := x509.NewCertPool()
				if !pool.AppendCertsFromPEM(pem) {
					return nil, fmt.Errorf("unable to parse CA file %q", config.TLSConfiguration.CAFile)
				}
				tlsConfig.RootCAs = pool
			}
			httpClient = &http.Client{
				Transport: &http.Transport{TLSClientConfig: tlsConfig},
			}
		}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	port := config.Port
	if port == 0 {
		port = defaultPort
	}

	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	token := config.Token
	if token == "" && config.Password != "" {
		// mirror the admin convention of reusing the basic-auth
		// password as the RBAC token
		token = config.Password
	}

	c := &Client{
		baseURL:  fmt.Sprintf("%s://%s:%d", scheme, config.Address, port),
		token:    token,
		username: config.Username,
		password: config.Password,
		client:   httpClient,
		logger:   logger.Named("admin"),
	}
	c.services = &ServicesClient{client: c}
	c.routes = &RoutesClient{client: c}
	c.consumers = &ConsumersClient{client: c}
	c.plugins = &PluginsClient{client: c}
	return c, nil
}

func (c *Client) Services() *ServicesClient   { return c.services }
func (c *Client) Routes() *RoutesClient       { return c.routes }
func (c *Client) Consumers() *ConsumersClient { return c.consumers }
func (c *Client) Plugins() *PluginsClient     { return c.plugins }

// buildURL joins the base address with the given path segments, skipping
// any empty segments and preserving order.
func (c *Client) buildURL(segments []string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, c.baseURL)
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, "/")
}

func (c *Client) newRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if c.token != "" {
		req.Header.Set(adminTokenHeader, c.token)
	}
	return req, nil
}

func (c *Client) roundTrip(req *http.Request) (int, json.RawMessage, error) {
	c.logger.Debug("admin api request", "method", req.Method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.Registry.Admin.Requests.WithLabelValues(req.Method, "error").Inc()
		return 0, nil, err
	}
	defer resp.Body.Close()

	metrics.Registry.Admin.Requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

// get issues a GET against the joined segments and expects a 200.
func (c *Client) get(ctx context.Context, segments []string, query url.Values) (json.RawMessage, error) {
	target := c.buildURL(segments)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.getRaw(ctx, target)
}

// getRaw issues a GET against a fully assembled URL. Pagination cursors
// are followed through here since they come back as pre-built paths.
func (c *Client) getRaw(ctx context.Context, target string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Status: status}
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, segments []string, payload interface{}) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPost, segments, payload, http.StatusCreated)
}

func (c *Client) patch(ctx context.Context, segments []string, payload interface{}) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPatch, segments, payload, http.StatusOK)
}

func (c *Client) write(ctx context.Context, method string, segments []string, payload interface{}, expected int) (json.RawMessage, error) {
	target := c.buildURL(segments)
	req, err := c.newRequest(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	status, body, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	if status != expected {
		return nil, &RequestError{
			Status:   status,
			Expected: expected,
			Path:     target,
			Body:     string(body),
			Payload:  payload,
		}
	}
	return body, nil
}

// put issues a PUT and reports whether the resource was created. Any
// successful status other than a 201 is treated as "no change" and the
// parsed body is handed back untouched.
func (c *Client) put(ctx context.Context, segments []string, payload interface{}) (json.RawMessage, bool, error) {
	target := c.buildURL(segments)
	req, err := c.newRequest(ctx, http.MethodPut, target, payload)
	if err != nil {
		return nil, false, err
	}
	status, body, err := c.roundTrip(req)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusCreated {
		return body, true, nil
	}
	if status < 200 || status > 299 {
		return nil, false, &StatusError{Status: status}
	}
	return body, false, nil
}

func (c *Client) delete(ctx context.Context, segments []string) error {
	target := c.buildURL(segments)
	req, err := c.newRequest(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	status, _, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &StatusError{Status: status}
	}
	return nil
}
