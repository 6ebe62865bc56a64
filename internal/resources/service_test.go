package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartpath/internal/api"
	"smartpath/internal/cache"
	"smartpath/internal/models"
)

type fakeCatalog struct {
	resources []models.Resource
	createErr error
	favErr    error

	listCalls   int
	getCalls    int
	favored     []int64
	unfavored   []int64
	lastCreated api.ResourceCreate
}

func (f *fakeCatalog) ListResources(ctx context.Context) ([]models.Resource, error) {
	f.listCalls++
	return f.resources, nil
}

func (f *fakeCatalog) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	f.getCalls++
	for i := range f.resources {
		if f.resources[i].ID == id {
			return &f.resources[i], nil
		}
	}
	return nil, api.NewRemoteError(404, "resource not found")
}

func (f *fakeCatalog) CreateResource(ctx context.Context, create api.ResourceCreate) (*models.Resource, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreated = create
	resource := models.Resource{ID: int64(len(f.resources) + 1), Title: create.Title}
	f.resources = append(f.resources, resource)
	return &resource, nil
}

func (f *fakeCatalog) FavoriteResource(ctx context.Context, id int64) error {
	if f.favErr != nil {
		return f.favErr
	}
	f.favored = append(f.favored, id)
	return nil
}

func (f *fakeCatalog) UnfavoriteResource(ctx context.Context, id int64) error {
	f.unfavored = append(f.unfavored, id)
	return nil
}

func (f *fakeCatalog) UploadResourceFile(ctx context.Context, id int64, fileName, contentType, dataBase64 string) (string, error) {
	return "https://cdn.example.com/" + fileName, nil
}

func newTestService(catalog *fakeCatalog) *Service {
	return NewService(catalog, cache.New(zap.NewNop()), zap.NewNop())
}

func TestListIsCached(t *testing.T) {
	catalog := &fakeCatalog{resources: []models.Resource{{ID: 1, Title: "Fractions 101"}}}
	service := newTestService(catalog)
	ctx := context.Background()

	first, err := service.List(ctx)
	require.NoError(t, err)
	second, err := service.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, catalog.listCalls)
}

func TestCreateRefreshesListing(t *testing.T) {
	catalog := &fakeCatalog{resources: []models.Resource{{ID: 1, Title: "Fractions 101"}}}
	service := newTestService(catalog)
	ctx := context.Background()

	_, err := service.List(ctx)
	require.NoError(t, err)

	created, err := service.Create(ctx, api.ResourceCreate{Title: "Long Division", Subject: "Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, "Long Division", created.Title)

	listing, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 2)
	assert.Equal(t, 2, catalog.listCalls, "creation must force a listing refetch")
}

func TestCreateFailureKeepsCachedListing(t *testing.T) {
	catalog := &fakeCatalog{
		resources: []models.Resource{{ID: 1, Title: "Fractions 101"}},
		createErr: errors.New("title already exists"),
	}
	service := newTestService(catalog)
	ctx := context.Background()

	_, err := service.List(ctx)
	require.NoError(t, err)

	_, err = service.Create(ctx, api.ResourceCreate{Title: "Fractions 101", Subject: "Mathematics"})
	require.EqualError(t, err, "title already exists")

	_, err = service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.listCalls, "failed creation must not drop the cache")
}

func TestFavoriteRefreshesBothViews(t *testing.T) {
	catalog := &fakeCatalog{resources: []models.Resource{{ID: 1, Title: "Fractions 101"}}}
	service := newTestService(catalog)
	ctx := context.Background()

	_, err := service.List(ctx)
	require.NoError(t, err)
	_, err = service.Get(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, service.Favorite(ctx, 1))
	assert.Equal(t, []int64{1}, catalog.favored)

	_, err = service.List(ctx)
	require.NoError(t, err)
	_, err = service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.listCalls)
	assert.Equal(t, 2, catalog.getCalls)
}

func TestFavoriteFailurePropagates(t *testing.T) {
	catalog := &fakeCatalog{
		resources: []models.Resource{{ID: 1, Title: "Fractions 101"}},
		favErr:    api.NewRemoteError(404, "resource not found"),
	}
	service := newTestService(catalog)

	err := service.Favorite(context.Background(), 1)
	assert.Equal(t, "resource not found", api.UserMessage(err))
	assert.Empty(t, catalog.favored)
}

func TestUploadReturnsFileURL(t *testing.T) {
	catalog := &fakeCatalog{resources: []models.Resource{{ID: 1, Title: "Fractions 101"}}}
	service := newTestService(catalog)

	url, err := service.Upload(context.Background(), 1, "worksheet.pdf", "application/pdf", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/worksheet.pdf", url)
}
