package api

import (
	"context"
	"net/http"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

type publicationReq struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// Publications lists all publications, newest first.  Listing is public.
func (c *Client) Publications(ctx context.Context) ([]model.Publication, error) {
	var out []model.Publication
	if err := c.doJSON(ctx, http.MethodGet, "/api/publications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePublication posts a new publication under the current user.
func (c *Client) CreatePublication(ctx context.Context, title, abstract string) (model.Publication, error) {
	var out model.Publication
	if err := c.doJSON(ctx, http.MethodPost, "/api/publications", publicationReq{Title: title, Abstract: abstract}, &out); err != nil {
		return model.Publication{}, err
	}
	return out, nil
}

// UpdatePublication edits one of the caller's publications.
func (c *Client) UpdatePublication(ctx context.Context, id, title, abstract string) (model.Publication, error) {
	var out model.Publication
	if err := c.doJSON(ctx, http.MethodPut, "/api/publications/"+id, publicationReq{Title: title, Abstract: abstract}, &out); err != nil {
		return model.Publication{}, err
	}
	return out, nil
}

// DeletePublication removes one of the caller's publications.
func (c *Client) DeletePublication(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/publications/"+id, nil, nil)
}
