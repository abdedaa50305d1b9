package api

import (
	"context"
	"net/http"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

// Files lists every uploaded document, newest first.
func (c *Client) Files(ctx context.Context) ([]model.UserFile, error) {
	var out []model.UserFile
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile sends one document as a multipart upload.  The backend derives
// the content type and size from the part itself.
func (c *Client) UploadFile(ctx context.Context, name string, content []byte) (model.UserFile, error) {
	var out model.UserFile
	fields := map[string]string{"name": name}
	files := []FilePart{{Field: "file", Filename: name, Content: content}}
	if err := c.doMultipart(ctx, http.MethodPost, "/api/files", fields, files, &out); err != nil {
		return model.UserFile{}, err
	}
	return out, nil
}

// DeleteFile removes one of the caller's own uploads.  Deleting someone
// else's file yields ErrUnauthorized.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/files/"+id, nil, nil)
}
