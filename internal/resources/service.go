// Package resources fronts the curated-content catalog, caching reads and
// invalidating them on every mutation.
package resources

import (
	"context"

	"go.uber.org/zap"

	"smartpath/internal/api"
	"smartpath/internal/cache"
	"smartpath/internal/models"
)

// CatalogService is the slice of the resource client the service needs
type CatalogService interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	CreateResource(ctx context.Context, create api.ResourceCreate) (*models.Resource, error)
	FavoriteResource(ctx context.Context, id int64) error
	UnfavoriteResource(ctx context.Context, id int64) error
	UploadResourceFile(ctx context.Context, id int64, fileName, contentType, dataBase64 string) (string, error)
}

// Service orchestrates catalog reads and mutations
type Service struct {
	catalog CatalogService
	cache   *cache.Store
	logger  *zap.Logger
}

// NewService creates a resource catalog service
func NewService(catalog CatalogService, queries *cache.Store, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, cache: queries, logger: logger}
}

// List returns the cached catalog listing
func (s *Service) List(ctx context.Context) ([]models.Resource, error) {
	return cache.Lookup(ctx, s.cache, cache.Resources(), s.catalog.ListResources)
}

// Get returns one cached catalog entry
func (s *Service) Get(ctx context.Context, id int64) (*models.Resource, error) {
	return cache.Lookup(ctx, s.cache, cache.Resource(id), func(ctx context.Context) (*models.Resource, error) {
		return s.catalog.GetResource(ctx, id)
	})
}

// Create adds a catalog entry and refreshes the listing
func (s *Service) Create(ctx context.Context, create api.ResourceCreate) (*models.Resource, error) {
	resource, err := s.catalog.CreateResource(ctx, create)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.Resources())
	s.logger.Info("resource created", zap.Int64("resourceID", resource.ID))
	return resource, nil
}

// Favorite marks an entry as a favorite and refreshes both views of it
func (s *Service) Favorite(ctx context.Context, id int64) error {
	if err := s.catalog.FavoriteResource(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.Resources())
	s.cache.Invalidate(cache.Resource(id))
	return nil
}

// Unfavorite removes an entry from favorites and refreshes both views of it
func (s *Service) Unfavorite(ctx context.Context, id int64) error {
	if err := s.catalog.UnfavoriteResource(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.Resources())
	s.cache.Invalidate(cache.Resource(id))
	return nil
}

// Upload attaches a file to an entry and returns its URL
func (s *Service) Upload(ctx context.Context, id int64, fileName, contentType, dataBase64 string) (string, error) {
	fileURL, err := s.catalog.UploadResourceFile(ctx, id, fileName, contentType, dataBase64)
	if err != nil {
		return "", err
	}
	s.cache.Invalidate(cache.Resource(id))
	s.cache.Invalidate(cache.Resources())
	return fileURL, nil
}
