package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/cenkalti/backoff"
	"github.com/mitchellh/mapstructure"
)

// NodeInfo is the subset of the gateway root payload we care about. The
// payload shape varies across gateway versions, so it is decoded
// weakly from the free-form response.
type NodeInfo struct {
	Version  string `mapstructure:"version"`
	Hostname string `mapstructure:"hostname"`
	NodeID   string `mapstructure:"node_id"`
	Tagline  string `mapstructure:"tagline"`
}

// Status is the gateway's self-reported health.
type Status struct {
	Database struct {
		Reachable bool `mapstructure:"reachable"`
	} `mapstructure:"database"`
}

// Root fetches the gateway root endpoint and decodes the node metadata.
func (c *Client) Root(ctx context.Context) (*NodeInfo, error) {
	body, err := c.get(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	info := &NodeInfo{}
	if err := decodePayload(body, info); err != nil {
		return nil, err
	}
	return info, nil
}

// Version returns the gateway version reported by the root endpoint.
func (c *Client) Version(ctx context.Context) (string, error) {
	info, err := c.Root(ctx)
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

// CheckVersion fails when the gateway reports a version older than
// minimum. Enterprise suffixes like "2.8.1.4-enterprise-edition" are
// tolerated by comparing the leading semver portion.
func (c *Client) CheckVersion(ctx context.Context, minimum string) error {
	min, err := semver.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	reported, err := c.Version(ctx)
	if err != nil {
		return err
	}
	current, err := semver.NewVersion(coreVersion(reported))
	if err != nil {
		return fmt.Errorf("parsing gateway version %q: %w", reported, err)
	}
	if current.LessThan(min) {
		return fmt.Errorf("gateway version %s is older than minimum supported version %s", reported, minimum)
	}
	return nil
}

// GetStatus fetches the status endpoint.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	body, err := c.get(ctx, []string{"status"}, nil)
	if err != nil {
		return nil, err
	}
	status := &Status{}
	if err := decodePayload(body, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Healthy reports whether the gateway's backing database is reachable.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	status, err := c.GetStatus(ctx)
	if err != nil {
		return false, err
	}
	return status.Database.Reachable, nil
}

// WaitForReady polls the status endpoint until the gateway reports a
// reachable database or the retry budget runs out.
func (c *Client) WaitForReady(ctx context.Context, interval time.Duration, maxRetries uint64) error {
	return backoff.Retry(func() error {
		healthy, err := c.Healthy(ctx)
		if err != nil {
			return err
		}
		if !healthy {
			return fmt.Errorf("gateway database unreachable according to status endpoint")
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), maxRetries), ctx))
}

// coreVersion reduces an enterprise version string such as
// "2.8.1.4-enterprise-edition" to its leading major.minor.patch part.
func coreVersion(version string) string {
	release := strings.SplitN(version, "-", 2)[0]
	parts := strings.Split(release, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}

func decodePayload(body json.RawMessage, target interface{}) error {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
