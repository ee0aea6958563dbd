package cart

import (
	"context"
	"errors"

	"github.com/savagerise/storefront/internal/models"
)

func testProduct(id string, price int64) models.Product {
	return models.Product{
		ID:    id,
		Name:  "Produit " + id,
		Price: models.NewMoneyFromInt(price),
		Variants: []models.Variant{
			testVariant("Noir"),
			testVariant("Blanc"),
		},
	}
}

func testVariant(color string) models.Variant {
	return models.Variant{
		Color: color,
		Sizes: []models.SizeStock{
			{Size: "S", Stock: 3},
			{Size: "M", Stock: 5},
			{Size: "L", Stock: 0},
		},
	}
}

type failingStore struct{}

var errStorageDown = errors.New("storage down")

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, errStorageDown }
func (failingStore) Set(context.Context, string, string) error         { return errStorageDown }
func (failingStore) Remove(context.Context, string) error              { return errStorageDown }
