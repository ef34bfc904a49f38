package input_test

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/input"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("ProductName", func(t *testing.T) {
		name, err := input.ProductName("  apple ")
		require.NoError(t, err)
		require.Equal(t, "apple", name)

		_, err = input.ProductName("   ")
		require.ErrorIs(t, err, input.ErrInvalidInput)
	})

	t.Run("Amount", func(t *testing.T) {
		d, err := input.Amount("1.05")
		require.NoError(t, err)
		require.Equal(t, "1.05", d.StringFixed(2))

		d, err = input.Amount("0")
		require.NoError(t, err)
		require.True(t, d.IsZero())

		for _, bad := range []string{"", "abc", "-0.01", "1,5"} {
			_, err := input.Amount(bad)
			require.ErrorIs(t, err, input.ErrInvalidInput, bad)
		}
	})

	t.Run("Quantity", func(t *testing.T) {
		n, err := input.Quantity(" 0 ")
		require.NoError(t, err)
		require.Zero(t, n)

		for _, bad := range []string{"", "1.5", "-1", "ten"} {
			_, err := input.Quantity(bad)
			require.ErrorIs(t, err, input.ErrInvalidInput, bad)
		}
	})

	t.Run("PositiveQuantity", func(t *testing.T) {
		n, err := input.PositiveQuantity("7")
		require.NoError(t, err)
		require.Equal(t, 7, n)

		_, err = input.PositiveQuantity("0")
		require.ErrorIs(t, err, input.ErrInvalidInput)
	})

	t.Run("Margin", func(t *testing.T) {
		m, err := input.Margin("0.25")
		require.NoError(t, err)
		require.Equal(t, "0.25", m.String())

		m, err = input.Margin("25%")
		require.NoError(t, err)
		require.Equal(t, "0.25", m.String())

		m, err = input.Margin("-0.1")
		require.NoError(t, err)
		require.True(t, m.IsNegative())

		_, err = input.Margin("a lot")
		require.ErrorIs(t, err, input.ErrInvalidInput)
	})
}
