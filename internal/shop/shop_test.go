package shop

import (
	"testing"

	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDistinctAndPriced(t *testing.T) {
	rng := randutil.New(42)
	catalog := items.Catalog()

	for i := 0; i < 100; i++ {
		offers := Sample(catalog, 6, rng)
		require.Len(t, offers, 6)

		seen := map[string]bool{}
		for _, o := range offers {
			assert.False(t, seen[o.ID], "duplicate offer %s", o.ID)
			seen[o.ID] = true

			lo := int(float64(o.BasePrice)*0.8) - 1
			hi := int(float64(o.BasePrice)*1.2) + 1
			assert.GreaterOrEqual(t, o.Price, lo, o.ID)
			assert.LessOrEqual(t, o.Price, hi, o.ID)
			assert.Equal(t, o.Price/2, o.SellPrice, o.ID)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := Sample(items.Catalog(), 6, randutil.New(7))
	b := Sample(items.Catalog(), 6, randutil.New(7))
	assert.Equal(t, a, b)
}

func TestSampleSmallCatalog(t *testing.T) {
	catalog := items.Catalog()[:3]
	offers := Sample(catalog, 6, randutil.New(1))
	assert.Len(t, offers, 3)

	assert.Empty(t, Sample(catalog, 0, randutil.New(1)))
	assert.Empty(t, Sample(nil, 6, randutil.New(1)))
}

func TestSampleDoesNotReorderCatalog(t *testing.T) {
	catalog := items.Catalog()
	before := make([]string, len(catalog))
	for i, tpl := range catalog {
		before[i] = tpl.ID
	}
	Sample(catalog, 6, randutil.New(3))
	for i, tpl := range catalog {
		assert.Equal(t, before[i], tpl.ID)
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, 0, Price(0, randutil.New(1)))
	rng := randutil.New(9)
	for i := 0; i < 1000; i++ {
		p := Price(1000, rng)
		assert.GreaterOrEqual(t, p, 800)
		assert.LessOrEqual(t, p, 1200)
	}
	assert.Equal(t, 44, SellPrice(89))
}
