package catalog_test

import (
	"slices"
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCatalog(t *testing.T) {
	t.Run("Restock_CreatesProductWithDerivedSellPrice", func(t *testing.T) {
		c := catalog.New()
		p, err := c.Restock("apple", dec("1.00"), 100, dec("0.20"))
		require.NoError(t, err)
		require.Equal(t, 100, p.Stock)
		require.True(t, p.WholesalePrice.Equal(dec("1.00")))
		require.True(t, p.SellPrice.Equal(dec("1.20")))
		require.Equal(t, 1, c.Len())
	})

	t.Run("Restock_AccumulatesStockAcrossCalls", func(t *testing.T) {
		c := catalog.New()
		quantities := []int{5, 0, 12, 3, 80}
		want := 0
		for _, q := range quantities {
			_, err := c.Restock("pear", dec("2.50"), q, dec("0.20"))
			require.NoError(t, err)
			want += q
		}
		p, ok := c.Lookup("pear")
		require.True(t, ok)
		require.Equal(t, want, p.Stock)
		require.Equal(t, 1, c.Len())
	})

	t.Run("Restock_OverwritesWholesaleAndSellPrice", func(t *testing.T) {
		c := catalog.New()
		_, err := c.Restock("milk", dec("2.00"), 10, dec("0.20"))
		require.NoError(t, err)
		p, err := c.Restock("milk", dec("3.00"), 5, dec("0.10"))
		require.NoError(t, err)
		require.Equal(t, 15, p.Stock)
		require.True(t, p.WholesalePrice.Equal(dec("3.00")))
		require.True(t, p.SellPrice.Equal(dec("3.30")))
	})

	t.Run("Restock_RejectsInvalidInputWithoutChanges", func(t *testing.T) {
		c := catalog.New()
		_, err := c.Restock("bread", dec("1.00"), 4, dec("0.20"))
		require.NoError(t, err)

		_, err = c.Restock("bread", dec("-1.00"), 4, dec("0.20"))
		require.ErrorIs(t, err, catalog.ErrInvalidInput)
		_, err = c.Restock("bread", dec("1.50"), -2, dec("0.20"))
		require.ErrorIs(t, err, catalog.ErrInvalidInput)
		_, err = c.Restock("", dec("1.00"), 1, dec("0.20"))
		require.ErrorIs(t, err, catalog.ErrInvalidInput)

		p, ok := c.Lookup("bread")
		require.True(t, ok)
		require.Equal(t, 4, p.Stock)
		require.True(t, p.WholesalePrice.Equal(dec("1.00")))
		require.Equal(t, 1, c.Len())
	})

	t.Run("UpdateMargin_RepricesEveryProduct", func(t *testing.T) {
		c := catalog.New()
		_, _ = c.Restock("a", dec("1.00"), 1, dec("0.20"))
		_, _ = c.Restock("b", dec("3.33"), 2, dec("0.20"))
		_, _ = c.Restock("c", dec("0.00"), 3, dec("0.20"))

		m := dec("0.375")
		c.UpdateMargin(m)
		for l := range c.Products() {
			p, ok := c.Lookup(l.Name)
			require.True(t, ok)
			require.True(t, l.SellPrice.Equal(p.WholesalePrice.Mul(dec("1").Add(m))), l.Name)
		}
	})

	t.Run("UpdateMargin_AcceptsNegativeMargin", func(t *testing.T) {
		c := catalog.New()
		_, _ = c.Restock("a", dec("10.00"), 1, dec("0.20"))
		c.UpdateMargin(dec("-0.5"))
		p, _ := c.Lookup("a")
		require.True(t, p.SellPrice.Equal(dec("5.00")))
	})

	t.Run("Products_YieldsInsertionOrder", func(t *testing.T) {
		c := catalog.New()
		for _, n := range []string{"zucchini", "apple", "mango"} {
			_, err := c.Restock(n, dec("1"), 1, dec("0"))
			require.NoError(t, err)
		}
		_, _ = c.Restock("apple", dec("2"), 1, dec("0"))

		var names []string
		for l := range c.Products() {
			names = append(names, l.Name)
		}
		require.Equal(t, []string{"zucchini", "apple", "mango"}, names)
	})

	t.Run("Products_EmptyCatalogYieldsNothing", func(t *testing.T) {
		require.Empty(t, slices.Collect(catalog.New().Products()))
	})

	t.Run("Get_MissingProduct", func(t *testing.T) {
		_, err := catalog.New().Get("ghost")
		require.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("Clone_IsIndependent", func(t *testing.T) {
		c := catalog.New()
		_, _ = c.Restock("a", dec("1"), 5, dec("0"))
		clone := c.Clone()
		_, _ = clone.Restock("a", dec("1"), 5, dec("0"))
		_, _ = clone.Restock("b", dec("1"), 5, dec("0"))

		p, _ := c.Lookup("a")
		require.Equal(t, 5, p.Stock)
		require.Equal(t, 1, c.Len())
	})
}

func TestProductCanSell(t *testing.T) {
	p := &catalog.Product{Name: "x", Stock: 3}
	require.ErrorIs(t, p.CanSell(0), catalog.ErrInvalidInput)
	require.ErrorIs(t, p.CanSell(4), catalog.ErrInsufficientStock)
	require.NoError(t, p.CanSell(3))

	empty := &catalog.Product{Name: "y"}
	require.ErrorIs(t, empty.CanSell(-1), catalog.ErrOutOfStock)
}
