package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"fnp-marketplace/models"
)

// UploadImage sends an image as the multipart "file" field and returns where it is hosted
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	data, err := c.send(ctx, http.MethodPost, "/admin/images", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decode[models.Image](data)
}

// RemoveImage deletes an uploaded image
func (c *Client) RemoveImage(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/images", id))
}
