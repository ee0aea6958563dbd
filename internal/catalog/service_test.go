package catalog

import (
	"context"
	"testing"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	products  []models.Product
	lastLimit int
	gets      int
}

func (f *fakeRemote) ListProducts(_ context.Context, _ int, limit int) ([]models.Product, error) {
	f.lastLimit = limit
	return f.products, nil
}

func (f *fakeRemote) GetProduct(_ context.Context, id string, _ int) (*models.Product, error) {
	f.gets++
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, apiclient.ErrProductNotFound
}

func (f *fakeRemote) SearchProducts(_ context.Context, _ models.SearchFilters, _ int, limit int) ([]models.Product, error) {
	f.lastLimit = limit
	return f.products, nil
}

func (f *fakeRemote) ListCategories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "c1", Name: "hoodies"}}, nil
}

func (f *fakeRemote) ProductsByCategory(_ context.Context, _ string, _ int, limit int) ([]models.Product, error) {
	f.lastLimit = limit
	return f.products, nil
}

func newFake() *fakeRemote {
	return &fakeRemote{products: []models.Product{{
		ID:    "p1",
		Name:  "Hoodie",
		Price: models.NewMoneyFromInt(120),
		Variants: []models.Variant{
			{Color: "Noir", Sizes: []models.SizeStock{{Size: "M", Stock: 2}}},
		},
	}}}
}

func TestResolveLine(t *testing.T) {
	svc := NewService(newFake(), 0)

	product, variant, err := svc.ResolveLine(context.Background(), "p1", " noir ")
	require.NoError(t, err)
	require.Equal(t, "Hoodie", product.Name)
	require.Equal(t, "Noir", variant.Color)

	_, _, err = svc.ResolveLine(context.Background(), "p1", "Rouge")
	require.ErrorIs(t, err, ErrVariantNotFound)

	_, _, err = svc.ResolveLine(context.Background(), "p9", "Noir")
	require.ErrorIs(t, err, apiclient.ErrProductNotFound)
}

func TestPageNormalize(t *testing.T) {
	require.Equal(t, Page{Skip: 0, Limit: 10}, Page{Skip: -3}.Normalize())
	require.Equal(t, Page{Skip: 5, Limit: 100}, Page{Skip: 5, Limit: 500}.Normalize())
}

func TestListClampsLimit(t *testing.T) {
	remote := newFake()
	svc := NewService(remote, 0)

	products, err := svc.List(context.Background(), Page{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, 100, remote.lastLimit)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hoodies", categories[0].Name)
}

func TestProductWithoutCacheHitsRemote(t *testing.T) {
	remote := newFake()
	svc := NewService(remote, 0)

	_, err := svc.Product(context.Background(), "p1")
	require.NoError(t, err)
	_, err = svc.Product(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 2, remote.gets)
}
