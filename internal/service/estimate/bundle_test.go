package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"steelestim/internal/storage"
)

func TestBundleCount(t *testing.T) {
	tests := []struct {
		name       string
		quantity   int
		bundleSize int
		want       int
	}{
		{"exact fit", 12, 4, 3},
		{"partial last bundle", 13, 4, 4},
		{"single piece", 1, 10, 1},
		{"bundle of one", 7, 1, 7},
		{"zero quantity is zero bundles", 0, 4, 0},
		{"zero bundle size", 12, 0, 0},
		{"negative quantity", -3, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BundleCount(tt.quantity, tt.bundleSize))
		})
	}
}

func TestBundleCount_CeilingProperty(t *testing.T) {
	// BundleCount(q, b) must be the smallest n with n*b >= q.
	for q := 1; q <= 50; q++ {
		for b := 1; b <= 10; b++ {
			n := BundleCount(q, b)
			assert.GreaterOrEqual(t, n*b, q, "q=%d b=%d", q, b)
			assert.Less(t, (n-1)*b, q, "q=%d b=%d", q, b)
		}
	}
}

func TestDeliveryAndPackBundles(t *testing.T) {
	item := storage.ProcessingItem{
		Quantity:          12,
		DeliveryBundleQty: 4,
		PackBundleQty:     6,
	}

	assert.Equal(t, 3, DeliveryBundles(item))
	assert.Equal(t, 2, PackBundles(item))
}
