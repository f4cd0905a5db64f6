package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// maxListPages bounds cursor walks against a misbehaving gateway. The
// admin API caps page sizes at 1000, so a thousand pages is far beyond
// any realistic configuration.
const maxListPages = 1000

// listPage is the shape every collection endpoint returns: a data array
// plus an optional cursor pointing at the next page.
type listPage struct {
	Data []json.RawMessage `json:"data"`
	Next string            `json:"next"`
}

// list fetches the first page of a collection.
func (c *Client) list(ctx context.Context, segments []string, query url.Values) (*listPage, error) {
	body, err := c.get(ctx, segments, query)
	if err != nil {
		return nil, err
	}
	page := &listPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, err
	}
	return page, nil
}

// listAll exhausts a collection by following the next cursor until it
// is empty. The cursor is an opaque relative path; a repeated cursor or
// an excessive page count is treated as a looping gateway and fails.
func (c *Client) listAll(ctx context.Context, segments []string, query url.Values) ([]json.RawMessage, error) {
	page, err := c.list(ctx, segments, query)
	if err != nil {
		return nil, err
	}

	items := page.Data
	previous := ""
	for pages := 1; page.Next != ""; pages++ {
		if pages >= maxListPages {
			return nil, fmt.Errorf("pagination exceeded %d pages, aborting", maxListPages)
		}
		if page.Next == previous {
			return nil, fmt.Errorf("pagination cursor %q repeated, aborting", page.Next)
		}
		previous = page.Next

		target := c.baseURL + "/" + strings.TrimPrefix(page.Next, "/")
		body, err := c.getRaw(ctx, target)
		if err != nil {
			return nil, err
		}
		page = &listPage{}
		if err := json.Unmarshal(body, page); err != nil {
			return nil, err
		}
		items = append(items, page.Data...)
	}
	return items, nil
}
