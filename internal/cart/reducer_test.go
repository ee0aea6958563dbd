package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lineOf(id, color, size string, qty int, price int64) Line {
	return Line{Product: testProduct(id, price), Variant: testVariant(color), Size: size, Quantity: qty}
}

func TestReduceAddMergesSameKey(t *testing.T) {
	state := State{}
	for _, qty := range []int{1, 2, 4} {
		state = Reduce(state, AddLineAction{Line: lineOf("p1", "Noir", "M", qty, 100)})
	}
	require.Len(t, state.Lines, 1)
	require.Equal(t, 7, state.Lines[0].Quantity)
	require.Equal(t, 7, state.ItemCount())
	require.Equal(t, "700.00", state.Subtotal().String())
}

func TestReduceAddKeepsInsertionOrder(t *testing.T) {
	state := Reduce(State{}, AddLineAction{Line: lineOf("p2", "Noir", "M", 1, 50)})
	state = Reduce(state, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	state = Reduce(state, AddLineAction{Line: lineOf("p1", "Blanc", "M", 1, 100)})
	state = Reduce(state, AddLineAction{Line: lineOf("p2", "Noir", "M", 1, 50)})

	require.Equal(t, "p2-Noir-M-2|p1-Noir-M-1|p1-Blanc-M-1", state.Signature())
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	after := Reduce(before, UpdateQuantityAction{Key: NewKey("p1", "Noir", "M"), Quantity: 9})

	require.Equal(t, 1, before.Lines[0].Quantity)
	require.Equal(t, 9, after.Lines[0].Quantity)
}

func TestReduceRemoveIsIdempotent(t *testing.T) {
	state := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	state = Reduce(state, AddLineAction{Line: lineOf("p2", "Noir", "S", 1, 30)})

	key := NewKey("p1", "Noir", "M")
	once := Reduce(state, RemoveLineAction{Key: key})
	twice := Reduce(once, RemoveLineAction{Key: key})

	require.Equal(t, once, twice)
	require.Equal(t, "p2-Noir-S-1", twice.Signature())
}

func TestReduceUpdateQuantityClamp(t *testing.T) {
	base := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 3, 100)})
	key := NewKey("p1", "Noir", "M")

	cases := []struct {
		name    string
		qty     int
		wantLen int
		wantQty int
	}{
		{name: "zero removes", qty: 0, wantLen: 0},
		{name: "negative removes", qty: -4, wantLen: 0},
		{name: "sets exactly", qty: 2, wantLen: 1, wantQty: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next := Reduce(base, UpdateQuantityAction{Key: key, Quantity: tc.qty})
			require.Len(t, next.Lines, tc.wantLen)
			if tc.wantLen == 1 {
				require.Equal(t, tc.wantQty, next.Lines[0].Quantity)
			}
		})
	}

	missing := Reduce(base, UpdateQuantityAction{Key: NewKey("p9", "Noir", "M"), Quantity: 5})
	require.Equal(t, base, missing)
}

func TestReduceLoadDropsInvalidAndMerges(t *testing.T) {
	state := Reduce(State{}, LoadAction{Lines: []Line{
		lineOf("p1", "Noir", "M", 1, 100),
		lineOf("p1", "Noir", "M", 2, 100),
		lineOf("p2", "Noir", "M", 0, 10),
		lineOf("", "Noir", "M", 1, 10),
	}})
	require.Equal(t, "p1-Noir-M-3", state.Signature())
}

func TestReduceClear(t *testing.T) {
	state := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	require.True(t, Reduce(state, ClearAction{}).IsEmpty())
}

func TestOrderItems(t *testing.T) {
	state := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 2, 100)})
	items := state.OrderItems()
	require.Len(t, items, 1)
	require.Equal(t, "p1", items[0].ProductID)
	require.Equal(t, 2, items[0].Qty)
	require.Equal(t, "100.00", items[0].UnitPrice.String())
}

func TestReduceAddRejectsQuantityOverLimit(t *testing.T) {
	full := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", MaxLineQuantity, 100)})
	require.Equal(t, MaxLineQuantity, full.Lines[0].Quantity)

	merged := Reduce(full, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	require.Equal(t, full, merged)
	require.Equal(t, MaxLineQuantity, merged.ItemCount())

	oversized := Reduce(State{}, AddLineAction{Line: lineOf("p2", "Noir", "M", MaxLineQuantity+1, 100)})
	require.True(t, oversized.IsEmpty())

	updated := Reduce(full, UpdateQuantityAction{Key: NewKey("p1", "Noir", "M"), Quantity: MaxLineQuantity + 1})
	require.Equal(t, full, updated)
}

func TestReduceSettleKeepsUnorderedContent(t *testing.T) {
	ordered := Reduce(State{}, AddLineAction{Line: lineOf("p1", "Noir", "M", 2, 100)})
	current := Reduce(ordered, AddLineAction{Line: lineOf("p1", "Noir", "M", 1, 100)})
	current = Reduce(current, AddLineAction{Line: lineOf("p2", "Noir", "S", 1, 30)})

	settled := Reduce(current, SettleAction{Lines: ordered.Lines})
	require.Equal(t, "p1-Noir-M-1|p2-Noir-S-1", settled.Signature())

	require.True(t, Reduce(ordered, SettleAction{Lines: ordered.Lines}).IsEmpty())
}
