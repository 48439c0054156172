package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	return NewStore(context.Background(), storage, "test-session", zap.NewNop()), storage
}

func kurta() ProductInfo {
	return ProductInfo{
		ProductID: "p1",
		Name:      "Embroidered Kurta",
		UnitPrice: 500,
		ImageURLs: []string{"https://img.example/kurta.jpg"},
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("M"), nil)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, s.TotalItems())
}

func TestAddItemDistinctVariantsAreIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	assert.Equal(t, 1000.0, s.TotalPrice())

	s.AddItem(ctx, kurta(), strPtr("L"), nil)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)

	// Removing the M line must leave the L line untouched
	s.RemoveItem(ctx, "p1", strPtr("M"), nil)
	lines = s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "L", *lines[0].SelectedSize)
	assert.Equal(t, 1, s.TotalItems())
}

func TestAddItemColorDistinguishesLines(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), strPtr("Red"))
	s.AddItem(ctx, kurta(), strPtr("M"), strPtr("Blue"))
	s.AddItem(ctx, kurta(), strPtr("M"), strPtr("Red"))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), nil, nil)
	s.UpdateQuantity(ctx, "p1", 5, nil, nil)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 2500.0, s.TotalPrice())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.UpdateQuantity(ctx, "p1", 0, strPtr("M"), nil)

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, 0.0, s.TotalPrice())
}

func TestUpdateQuantityMissingLineIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.UpdateQuantity(ctx, "p1", 7, strPtr("XL"), nil)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveItemMissingLineIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.RemoveItem(ctx, "p1", strPtr("L"), nil)
	s.RemoveItem(ctx, "p2", strPtr("M"), nil)

	assert.Len(t, s.Lines(), 1)
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("L"), nil)
	s.Clear(ctx)

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, 0.0, s.TotalPrice())
}

func TestDerivedReadsAreIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("M"), nil)

	assert.Equal(t, s.TotalItems(), s.TotalItems())
	assert.Equal(t, s.TotalPrice(), s.TotalPrice())
}

func TestEmptyVariantNormalizedToNil(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// "" and nil address the same line
	s.AddItem(ctx, kurta(), strPtr(""), nil)
	s.AddItem(ctx, kurta(), nil, strPtr(""))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Nil(t, lines[0].SelectedSize)
	assert.Nil(t, lines[0].SelectedColor)
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	s := NewStore(ctx, storage, "sess-1", zap.NewNop())
	s.AddItem(ctx, kurta(), strPtr("M"), strPtr("Red"))
	s.AddItem(ctx, kurta(), strPtr("M"), strPtr("Red"))

	// A new store for the same session sees the persisted state
	reloaded := NewStore(ctx, storage, "sess-1", zap.NewNop())
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Embroidered Kurta", lines[0].Name)
	assert.Equal(t, "Red", *lines[0].SelectedColor)

	// Sessions are isolated
	other := NewStore(ctx, storage, "sess-2", zap.NewNop())
	assert.Empty(t, other.Lines())
}

func TestCorruptStoredCartIsTreatedAsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, "cart:sess-1", "{not json"))

	s := NewStore(ctx, storage, "sess-1", zap.NewNop())
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())

	// The store is usable afterwards
	s.AddItem(ctx, kurta(), nil, nil)
	assert.Equal(t, 1, s.TotalItems())
}

func TestScenarioFromCartPage(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Two adds with size M merge into one line of quantity 2
	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	s.AddItem(ctx, kurta(), strPtr("M"), nil)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 2, s.Lines()[0].Quantity)
	assert.Equal(t, 1000.0, s.TotalPrice())

	// Size L is a distinct line
	s.AddItem(ctx, kurta(), strPtr("L"), nil)
	assert.Len(t, s.Lines(), 2)
	assert.Equal(t, 3, s.TotalItems())

	// Removing M leaves only L
	s.RemoveItem(ctx, "p1", strPtr("M"), nil)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "L", *lines[0].SelectedSize)
	assert.Equal(t, 1, s.TotalItems())
}
