package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/storage"

	"github.com/stretchr/testify/require"
)

func TestStoreAddLinePersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := NewStore(mem)

	var seen []Snapshot
	store.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 2))
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 1))

	snap := store.Snapshot()
	require.Len(t, snap.State.Lines, 1)
	require.Equal(t, 3, snap.ItemCount)
	require.Equal(t, "300.00", snap.Subtotal.String())
	require.Equal(t, "p1-Noir-M-3", snap.Signature)

	require.Len(t, seen, 2)
	require.Equal(t, "p1-Noir-M-2", seen[0].Signature)
	require.Less(t, seen[0].Version, seen[1].Version)

	raw, ok, err := mem.Get(ctx, constants.StorageKeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.EqualValues(t, 300, persisted["total"])
	require.EqualValues(t, 3, persisted["itemCount"])
	items := persisted["items"].([]interface{})
	first := items[0].(map[string]interface{})
	require.Equal(t, "M", first["selectedSize"])
	require.EqualValues(t, 3, first["quantity"])
}

func TestStoreAddLineRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	product := testProduct("p1", 100)

	cases := []struct {
		name    string
		product models.Product
		variant models.Variant
		size    string
		qty     int
	}{
		{name: "missing product", product: models.Product{}, variant: product.Variants[0], size: "M", qty: 1},
		{name: "missing variant", product: product, variant: models.Variant{}, size: "M", qty: 1},
		{name: "missing size", product: product, variant: product.Variants[0], size: " ", qty: 1},
		{name: "size not offered", product: product, variant: product.Variants[0], size: "XXL", qty: 1},
		{name: "zero quantity", product: product, variant: product.Variants[0], size: "M", qty: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.AddLine(ctx, tc.product, tc.variant, tc.size, tc.qty)
			require.ErrorIs(t, err, ErrInvalidLine)
			require.True(t, store.Snapshot().State.IsEmpty())
		})
	}
}

func TestStoreFreezesPriceAtFirstAdd(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())

	first := testProduct("p1", 100)
	repriced := testProduct("p1", 150)
	require.NoError(t, store.AddLine(ctx, first, first.Variants[0], "M", 1))
	require.NoError(t, store.AddLine(ctx, repriced, repriced.Variants[0], "M", 1))

	require.Equal(t, "200.00", store.Snapshot().Subtotal.String())
}

func TestStoreRemoveAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 2))

	require.NoError(t, store.UpdateQuantity(ctx, "p1", "Noir", "M", 5))
	require.Equal(t, 5, store.Snapshot().ItemCount)

	require.NoError(t, store.UpdateQuantity(ctx, "p1", "Noir", "M", -1))
	require.True(t, store.Snapshot().State.IsEmpty())

	store.RemoveLine(ctx, "p1", "Noir", "M")
	store.RemoveLine(ctx, "p1", "Noir", "M")
	require.True(t, store.Snapshot().State.IsEmpty())
}

func TestStoreHydrateDiscardsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	good := `{"product":{"id":"p1","name":"Tee","price":100},"selectedVariant":{"color":"Noir","sizes":[{"size":"M","stock":2}]},"selectedSize":"M","quantity":2}`
	dup := `{"product":{"id":"p1","name":"Tee","price":100},"selectedVariant":{"color":"Noir"},"selectedSize":"M","quantity":1}`
	raw := `{"items":[` + good + `,` + dup + `,
		{"product":{"id":"p2","price":10},"selectedSize":"M","quantity":1},
		{"product":{"id":"p3","price":10},"selectedVariant":{"color":"Noir"},"selectedSize":"M","quantity":"2"},
		{"product":{"id":"p4","price":10},"selectedVariant":{"color":"Noir"},"selectedSize":"M","quantity":0},
		{"product":{"id":"p5","price":"abc"},"selectedVariant":{"color":"Noir"},"selectedSize":"M","quantity":1},
		{"product":{"id":"p6","price":10},"selectedVariant":{"color":"Noir"},"selectedSize":"M","quantity":1.5},
		42
	],"total":999,"itemCount":999}`
	require.NoError(t, mem.Set(ctx, constants.StorageKeyCart, raw))

	store := NewStore(mem)
	store.Hydrate(ctx)

	snap := store.Snapshot()
	require.Equal(t, "p1-Noir-M-3", snap.Signature)
	require.Equal(t, "300.00", snap.Subtotal.String())

	cleaned, ok, err := mem.Get(ctx, constants.StorageKeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	lines, dropped, err := Decode(cleaned)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Len(t, lines, 1)
}

func TestStoreHydrateMalformedDocument(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, constants.StorageKeyCart, "{not json"))

	store := NewStore(mem)
	store.Hydrate(ctx)

	require.True(t, store.Snapshot().State.IsEmpty())
	_, ok, err := mem.Get(ctx, constants.StorageKeyCart)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreHydrateRunsOnce(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := NewStore(mem)
	store.Hydrate(ctx)

	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 1))
	require.NoError(t, mem.Set(ctx, constants.StorageKeyCart, `{"items":[]}`))
	store.Hydrate(ctx)

	require.Equal(t, 1, store.Snapshot().ItemCount)
}

func TestStoreSurvivesStorageFailure(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingStore{})
	store.Hydrate(ctx)

	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "S", 1))
	require.NoError(t, store.UpdateQuantity(ctx, "p1", "Noir", "S", 4))
	require.Equal(t, 4, store.Snapshot().ItemCount)
	store.Clear(ctx)
	require.True(t, store.Snapshot().State.IsEmpty())
}

func TestStoreUnsubscribe(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	calls := 0
	cancel := store.Subscribe(func(Snapshot) { calls++ })

	store.Clear(ctx)
	cancel()
	store.Clear(ctx)

	require.Equal(t, 1, calls)
}

func TestEncodeEmptyState(t *testing.T) {
	raw, err := Encode(State{})
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[],"total":0.00,"itemCount":0}`, raw)
}

func TestStoreRejectsQuantityOverflow(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	product := testProduct("p1", 100)

	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", MaxLineQuantity))
	require.ErrorIs(t, store.AddLine(ctx, product, product.Variants[0], "M", 1), ErrInvalidLine)
	require.ErrorIs(t, store.UpdateQuantity(ctx, "p1", "Noir", "M", MaxLineQuantity+1), ErrInvalidLine)

	snap := store.Snapshot()
	require.Len(t, snap.State.Lines, 1)
	require.Equal(t, MaxLineQuantity, snap.ItemCount)
	require.False(t, snap.Subtotal.IsNegative())
}

func TestStoreQuantityAtLimitSurvivesReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := NewStore(mem)
	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 1))
	require.NoError(t, store.UpdateQuantity(ctx, "p1", "Noir", "M", MaxLineQuantity))

	reloaded := NewStore(mem)
	reloaded.Hydrate(ctx)

	snap := reloaded.Snapshot()
	require.Len(t, snap.State.Lines, 1)
	require.Equal(t, MaxLineQuantity, snap.ItemCount)
}

func TestStoreSettleRemovesOnlyOrderedQuantities(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	product := testProduct("p1", 100)
	require.NoError(t, store.AddLine(ctx, product, product.Variants[0], "M", 2))
	ordered := store.Snapshot().State.Lines

	require.NoError(t, store.AddLine(ctx, product, product.Variants[1], "S", 1))
	store.Settle(ctx, ordered)

	require.Equal(t, "p1-Blanc-S-1", store.Snapshot().Signature)
}
