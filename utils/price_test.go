package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		display string
		want    int64
	}{
		{"£28,995", 2899500},
		{"$45.00", 4500},
		{"45", 4500},
		{"€1,299.99", 129999},
		{"0.5", 50},
		{"free", 0},
		{"", 0},
		{".", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePriceCents(tc.display), "display=%q", tc.display)
	}
}

func TestSplitSubtotalExact(t *testing.T) {
	subtotals := []int64{1, 99, 100, 101, 4500, 2899500, 999999999}
	bps := []int64{0, 1, 250, 1000, 3333, 9999, 10000}
	for _, sub := range subtotals {
		for _, b := range bps {
			fee, payout := SplitSubtotal(sub, b)
			assert.Equal(t, sub, fee+payout, "subtotal=%d bps=%d", sub, b)
			assert.GreaterOrEqual(t, fee, int64(0))
			assert.GreaterOrEqual(t, payout, int64(0))
		}
	}
}

func TestSplitSubtotalTenPercent(t *testing.T) {
	fee, payout := SplitSubtotal(4500, 1000)
	assert.Equal(t, int64(450), fee)
	assert.Equal(t, int64(4050), payout)
}
