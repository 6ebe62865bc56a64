package api

import (
	"context"
	"fmt"
	"net/http"

	"smartpath/internal/models"
)

// ResourceClient talks to the curated-content catalog endpoints
type ResourceClient struct {
	*Client
}

// NewResourceClient creates a resource client sharing the base transport
func NewResourceClient(client *Client) *ResourceClient {
	return &ResourceClient{Client: client}
}

// ListResources lists the catalog entries visible to the current user
func (c *ResourceClient) ListResources(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.do(ctx, http.MethodGet, "/resources", nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// GetResource fetches one catalog entry
func (c *ResourceClient) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	var resource models.Resource
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/resources/%d", id), nil, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// ResourceCreate carries the fields for a new catalog entry
type ResourceCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject"`
	GradeLevel  int    `json:"grade_level,omitempty"`
}

// CreateResource adds a new catalog entry
func (c *ResourceClient) CreateResource(ctx context.Context, create ResourceCreate) (*models.Resource, error) {
	if create.Title == "" || create.Subject == "" {
		return nil, ErrValidation
	}
	var resource models.Resource
	if err := c.do(ctx, http.MethodPost, "/resources", create, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// FavoriteResource marks a catalog entry as a favorite
func (c *ResourceClient) FavoriteResource(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/resources/%d/favorite", id), nil, nil)
}

// UnfavoriteResource removes a catalog entry from favorites
func (c *ResourceClient) UnfavoriteResource(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/resources/%d/favorite", id), nil, nil)
}

type uploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	DataBase64  string `json:"data_base64"`
}

type uploadResponse struct {
	FileURL string `json:"file_url"`
}

// UploadResourceFile attaches a file to a catalog entry and returns its URL
func (c *ResourceClient) UploadResourceFile(ctx context.Context, id int64, fileName, contentType, dataBase64 string) (string, error) {
	if fileName == "" || dataBase64 == "" {
		return "", ErrValidation
	}
	req := uploadRequest{FileName: fileName, ContentType: contentType, DataBase64: dataBase64}
	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/resources/%d/upload", id), req, &resp); err != nil {
		return "", err
	}
	return resp.FileURL, nil
}
