package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/background"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

func tee(size, color string) model.LineItem {
	return model.LineItem{ProductID: 1, Name: "Basic Tee", UnitPrice: 1500, Quantity: 1, Size: size, Color: color}
}

func TestAddItemMergesSameKey(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddItem(tee("M", "Black"), 1)
	s.AddItem(tee("M", "Black"), 2)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddItemDifferentSizeIsNewLine(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddItem(tee("M", "Black"), 1)
	s.AddItem(tee("L", "Black"), 1)
	s.AddItem(tee("M", "White"), 1)

	assert.Len(t, s.Lines(), 3)
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddItem(tee("M", "Black"), 2)
	key := tee("M", "Black").Key()

	require.NoError(t, s.UpdateQuantity(key, -10))
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(key, 4))
	assert.Equal(t, 5, s.Lines()[0].Quantity)
}

func TestUpdateQuantityUnknownKey(t *testing.T) {
	s := NewStore(nil, nil)
	err := s.UpdateQuantity(model.LineKey{ProductID: 99, Size: "M", Color: "Red"}, 1)
	assert.Error(t, err)
}

func TestRemoveItemIsNoopWhenAbsent(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddItem(tee("M", "Black"), 1)
	s.RemoveItem(model.LineKey{ProductID: 42, Size: "S", Color: "Green"})
	assert.Len(t, s.Lines(), 1)

	s.RemoveItem(tee("M", "Black").Key())
	assert.Empty(t, s.Lines())
}

func TestClearDropsPromo(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddItem(tee("M", "Black"), 1)
	s.ApplyPromo(model.AppliedPromo{Code: "SAVE10", DiscountType: model.DiscountPercent, DiscountValue: 10})

	s.Clear()
	assert.Empty(t, s.Lines())
	assert.Nil(t, s.Promo())
}

func TestMutationsMirrorToBackend(t *testing.T) {
	q := background.New(16)
	backend := NewMemoryBackend()
	s := NewStore(backend, q)

	s.AddItem(tee("M", "Black"), 2)
	s.AddItem(tee("L", "White"), 1)
	s.RemoveItem(tee("L", "White").Key())
	q.Stop()

	lines, err := backend.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}
