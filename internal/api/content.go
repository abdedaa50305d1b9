package api

import (
	"context"
	"net/http"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// SiteContent fetches the singleton site content record.  Reads work with or
// without a token.
func (c *Client) SiteContent(ctx context.Context) (model.SiteContent, error) {
	var out model.SiteContent
	if err := c.doJSON(ctx, http.MethodGet, "/api/site-content/", nil, &out); err != nil {
		return model.SiteContent{}, err
	}
	return out, nil
}

// UpdateSiteContent writes contact/footer fields.  Only effective admins may
// write; others receive ErrUnauthorized.
func (c *Client) UpdateSiteContent(ctx context.Context, content model.SiteContent) (model.SiteContent, error) {
	var out model.SiteContent
	if err := c.doJSON(ctx, http.MethodPut, "/api/site-content/", content, &out); err != nil {
		return model.SiteContent{}, err
	}
	return out, nil
}
