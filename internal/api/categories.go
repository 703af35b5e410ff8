package api

import (
	"context"
	"net/url"
	"strconv"
)

// Categories lists categories. includeInactive is a tri-state: nil omits the
// parameter entirely.
func (c *Client) Categories(ctx context.Context, includeInactive *bool) ([]Category, error) {
	var query url.Values
	if includeInactive != nil {
		query = url.Values{"includeInactive": []string{strconv.FormatBool(*includeInactive)}}
	}
	var out []Category
	if err := c.get(ctx, "/categories", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := c.get(ctx, "/categories/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
