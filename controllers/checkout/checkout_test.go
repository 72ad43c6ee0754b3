package checkoutControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/utils"
)

func TestBuildLines(t *testing.T) {
	items := []models.CartItem{
		{Title: "Surf lesson", PriceCents: 4500, Quantity: 2},
		{Title: "Board rental", PriceCents: 2000, Quantity: 1},
	}

	lines, subtotal := buildLines(items)
	assert.Len(t, lines, 2)
	assert.Equal(t, int64(11000), subtotal)
	assert.Equal(t, "Surf lesson", lines[0].Title)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestFeeSplitNeverLosesMoney(t *testing.T) {
	items := []models.CartItem{
		{Title: "Odd price", PriceCents: 333, Quantity: 3},
		{Title: "Another", PriceCents: 101, Quantity: 7},
	}
	_, subtotal := buildLines(items)

	for _, bps := range []int64{0, 250, 1000, 1500, 9999} {
		fee, payout := utils.SplitSubtotal(subtotal, bps)
		assert.Equal(t, subtotal, fee+payout, "bps=%d", bps)
	}
}

func TestCurrencyOrDefault(t *testing.T) {
	assert.Equal(t, "gbp", currencyOrDefault(""))
	assert.Equal(t, "usd", currencyOrDefault("usd"))
}
