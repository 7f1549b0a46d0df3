package helper

import (
	"sync"
	"testing"

	"nyn_restaurant/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func borscht() CartLine {
	return CartLine{Name: "Borscht", Price: 14.00, CategoryKey: "soups"}
}

func ribeye() CartLine {
	return CartLine{Name: "Ribeye Steak", Price: 38.00, CategoryKey: "mains"}
}

func TestCartStore_AddItem_NewLine(t *testing.T) {
	s := NewCartStore()

	cart := s.AddItem("tok", borscht())
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Qty)
	assert.Equal(t, 14.00, cart.Subtotal)
}

func TestCartStore_AddItem_SameIdentityIncrements(t *testing.T) {
	s := NewCartStore()

	s.AddItem("tok", borscht())
	cart := s.AddItem("tok", borscht())

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Qty)
	assert.Equal(t, 28.00, cart.Subtotal)
}

func TestCartStore_AddItem_SameNameDifferentCategory(t *testing.T) {
	s := NewCartStore()

	s.AddItem("tok", CartLine{Name: "Pelmeni", Price: 12, CategoryKey: "appetizers"})
	cart := s.AddItem("tok", CartLine{Name: "Pelmeni", Price: 18, CategoryKey: "mains"})

	assert.Len(t, cart.Lines, 2)
}

func TestCartStore_UpdateQty(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())

	cart := s.UpdateQty("tok", "Borscht", "soups", 3)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Qty)
	assert.Equal(t, 42.00, cart.Subtotal)
}

func TestCartStore_UpdateQtyZeroRemoves(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())
	s.AddItem("tok", ribeye())

	cart := s.UpdateQty("tok", "Borscht", "soups", 0)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Ribeye Steak", cart.Lines[0].Name)

	// RemoveItem is the same operation
	cart = s.RemoveItem("tok", "Ribeye Steak", "mains")
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0.0, cart.Subtotal)
}

func TestCartStore_UpdateQty_MissingLineIsNoop(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())

	cart := s.UpdateQty("tok", "Golubtsi", "mains", 5)
	assert.Len(t, cart.Lines, 1)
}

func TestCartStore_ClearDropsPromo(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())
	s.SetPromo("tok", &AppliedPromo{Code: "SAVE10", Type: constants.PROMO_PERCENT, Value: 10})

	cart := s.Clear("tok")
	assert.Empty(t, cart.Lines)
	assert.Nil(t, cart.Promo)

	// promo does not come back with the next item
	cart = s.AddItem("tok", ribeye())
	assert.Nil(t, cart.Promo)
}

func TestCartStore_RemovingLastLineDropsPromo(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())
	s.AddItem("tok", ribeye())
	s.SetPromo("tok", &AppliedPromo{Code: "SAVE10", Type: constants.PROMO_PERCENT, Value: 10})

	// promo survives while lines remain
	cart := s.RemoveItem("tok", "Borscht", "soups")
	assert.NotNil(t, cart.Promo)

	// emptying the cart item-by-item behaves like Clear
	cart = s.RemoveItem("tok", "Ribeye Steak", "mains")
	assert.Empty(t, cart.Lines)
	assert.Nil(t, cart.Promo)

	// and the promo does not resurface with the next item
	cart = s.AddItem("tok", borscht())
	assert.Nil(t, cart.Promo)
}

func TestCartStore_PromoDiscountTracksSubtotal(t *testing.T) {
	s := NewCartStore()
	s.AddItem("tok", borscht())
	s.AddItem("tok", ribeye())
	cart := s.SetPromo("tok", &AppliedPromo{Code: "SAVE10", Type: constants.PROMO_PERCENT, Value: 10})

	require.NotNil(t, cart.Promo)
	assert.Equal(t, 52.00, cart.Subtotal)
	assert.Equal(t, 5.20, cart.Promo.Discount)

	// discount follows the cart as quantities change
	cart = s.UpdateQty("tok", "Ribeye Steak", "mains", 2)
	assert.Equal(t, 90.00, cart.Subtotal)
	assert.Equal(t, 9.00, cart.Promo.Discount)
}

func TestCartStore_SessionsAreIsolated(t *testing.T) {
	s := NewCartStore()
	s.AddItem("alice", borscht())
	s.AddItem("bob", ribeye())

	assert.Equal(t, 14.00, s.Get("alice").Subtotal)
	assert.Equal(t, 38.00, s.Get("bob").Subtotal)
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	s := NewCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem("tok", borscht())
		}()
	}
	wg.Wait()

	cart := s.Get("tok")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 50, cart.Lines[0].Qty)
}

func TestCartSubtotal(t *testing.T) {
	lines := []CartLine{
		{Name: "Borscht", Price: 14, Qty: 2},
		{Name: "Ribeye Steak", Price: 38, Qty: 1},
	}
	assert.Equal(t, 66.00, CartSubtotal(lines))
	assert.Equal(t, 0.0, CartSubtotal(nil))
}
