package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"steelestim/internal/storage"
)

func fptr(v float64) *float64 { return &v }

func TestResolveConnection_OverrideWinsOverDefault(t *testing.T) {
	ic := storage.WeldingItemConnection{
		Quantity: 3,
		Weld:     fptr(10),
	}
	def := &storage.WeldingConnection{
		DefaultAssembleFitTack: 5,
		DefaultWeld:            3,
		DefaultWeldCheck:       2,
		DefaultWeldTest:        0,
	}

	times := ResolveConnection(ic, def)

	assert.Equal(t, 5.0, times.AssembleFitTack)
	assert.Equal(t, 10.0, times.Weld)
	assert.Equal(t, 2.0, times.WeldCheck)
	assert.Equal(t, 0.0, times.WeldTest)
	assert.Equal(t, 51.0, times.TotalMinutes)
}

func TestResolveConnection_ZeroOverrideStillWins(t *testing.T) {
	// An explicit zero override must not fall through to the default.
	ic := storage.WeldingItemConnection{
		Quantity: 1,
		Weld:     fptr(0),
	}
	def := &storage.WeldingConnection{DefaultWeld: 7}

	times := ResolveConnection(ic, def)

	assert.Equal(t, 0.0, times.Weld)
}

func TestResolveConnection_MissingDefaultResolvesToZero(t *testing.T) {
	ic := storage.WeldingItemConnection{
		Quantity:        2,
		AssembleFitTack: fptr(4),
	}

	times := ResolveConnection(ic, nil)

	assert.Equal(t, 4.0, times.AssembleFitTack)
	assert.Equal(t, 0.0, times.Weld)
	assert.Equal(t, 0.0, times.WeldCheck)
	assert.Equal(t, 0.0, times.WeldTest)
	assert.Equal(t, 8.0, times.TotalMinutes)
}

func TestResolveConnection_LinearInQuantity(t *testing.T) {
	def := &storage.WeldingConnection{
		DefaultAssembleFitTack: 5,
		DefaultWeld:            3,
		DefaultWeldCheck:       2,
	}

	base := ResolveConnection(storage.WeldingItemConnection{Quantity: 1}, def)
	for q := 0; q <= 10; q++ {
		got := ResolveConnection(storage.WeldingItemConnection{Quantity: q}, def)
		assert.Equal(t, base.TotalMinutes*float64(q), got.TotalMinutes, "q=%d", q)
	}
}
