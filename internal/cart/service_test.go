package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "sess-1"

func TestService_AddAndTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("Append then merge by product id", func(t *testing.T) {
		svc := NewService(NewMemoryStore())

		c, err := svc.Add(ctx, testToken, Item{ProductID: "p1", Title: "Rose Bouquet", Price: 500, Quantity: 2})
		require.NoError(t, err)
		assert.Len(t, c.Items, 1)

		c, err = svc.Add(ctx, testToken, Item{ProductID: "p2", Title: "Tulip Box", Price: 300})
		require.NoError(t, err)
		assert.Len(t, c.Items, 2)
		assert.Equal(t, 1, c.Items[1].Quantity) // defaulted

		c, err = svc.Add(ctx, testToken, Item{ProductID: "p1", Title: "Rose Bouquet", Price: 500, Quantity: 1})
		require.NoError(t, err)
		assert.Len(t, c.Items, 2)
		assert.Equal(t, 3, c.Items[0].Quantity)

		// insertion order preserved
		assert.Equal(t, "p1", c.Items[0].ProductID)
		assert.Equal(t, "p2", c.Items[1].ProductID)

		assert.Equal(t, float64(3*500+300), c.Total)
		assert.Equal(t, 4, c.Count)
	})

	t.Run("Missing session token", func(t *testing.T) {
		svc := NewService(NewMemoryStore())
		_, err := svc.Add(ctx, "", Item{ProductID: "p1", Quantity: 1})
		assert.ErrorIs(t, err, ErrSessionRequired)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) Service {
		svc := NewService(NewMemoryStore())
		_, err := svc.Add(ctx, testToken, Item{ProductID: "p1", Price: 500, Quantity: 2})
		require.NoError(t, err)
		return svc
	}

	t.Run("Set quantity", func(t *testing.T) {
		svc := setup(t)
		c, err := svc.UpdateQuantity(ctx, testToken, "p1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, c.Items[0].Quantity)
		assert.Equal(t, float64(2500), c.Total)
	})

	t.Run("Zero removes the line, not quantity=0", func(t *testing.T) {
		svc := setup(t)
		c, err := svc.UpdateQuantity(ctx, testToken, "p1", 0)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
		assert.Equal(t, float64(0), c.Total)
		assert.Equal(t, 0, c.Count)
	})

	t.Run("Unknown line", func(t *testing.T) {
		svc := setup(t)
		_, err := svc.UpdateQuantity(ctx, testToken, "ghost", 2)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	_, err := svc.Add(ctx, testToken, Item{ProductID: "p1", Price: 500, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, testToken, Item{ProductID: "p2", Price: 300, Quantity: 1})
	require.NoError(t, err)

	c, err := svc.Remove(ctx, testToken, "p1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	// removing a missing line is a no-op
	c, err = svc.Remove(ctx, testToken, "ghost")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	_, err := svc.Add(ctx, testToken, Item{ProductID: "p1", Price: 500, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, testToken))

	c, err := svc.Get(ctx, testToken)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestService_BuyNow(t *testing.T) {
	ctx := context.Background()

	t.Run("Staged item consumed once", func(t *testing.T) {
		svc := NewService(NewMemoryStore())

		err := svc.StageBuyNow(ctx, testToken, Item{ProductID: "p9", Price: 800, Quantity: 2})
		require.NoError(t, err)

		item, err := svc.TakeBuyNow(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, "p9", item.ProductID)
		assert.Equal(t, 2, item.Quantity)

		_, err = svc.TakeBuyNow(ctx, testToken)
		assert.ErrorIs(t, err, ErrBuyNowEmpty)
	})

	t.Run("Peek leaves the staged item in place", func(t *testing.T) {
		svc := NewService(NewMemoryStore())

		require.NoError(t, svc.StageBuyNow(ctx, testToken, Item{ProductID: "p9", Price: 800, Quantity: 2}))

		item, err := svc.PeekBuyNow(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, "p9", item.ProductID)

		item, err = svc.PeekBuyNow(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)

		_, err = svc.TakeBuyNow(ctx, testToken)
		require.NoError(t, err)
		_, err = svc.PeekBuyNow(ctx, testToken)
		assert.ErrorIs(t, err, ErrBuyNowEmpty)
	})

	t.Run("Does not touch the cart", func(t *testing.T) {
		svc := NewService(NewMemoryStore())

		_, err := svc.Add(ctx, testToken, Item{ProductID: "p1", Price: 100, Quantity: 1})
		require.NoError(t, err)
		require.NoError(t, svc.StageBuyNow(ctx, testToken, Item{ProductID: "p9", Price: 800, Quantity: 1}))

		c, err := svc.Get(ctx, testToken)
		require.NoError(t, err)
		assert.Len(t, c.Items, 1)
		assert.Equal(t, "p1", c.Items[0].ProductID)
	})

	t.Run("Requires explicit quantity", func(t *testing.T) {
		svc := NewService(NewMemoryStore())
		err := svc.StageBuyNow(ctx, testToken, Item{ProductID: "p9", Price: 800})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}
