package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.90), BRL)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.90)))
		assert.Equal(t, BRL, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("NewMoneyFromString rejects invalid amount", func(t *testing.T) {
		_, err := NewMoneyFromString("abc", BRL)
		assert.Error(t, err)
	})

	t.Run("ZeroBRL is zero", func(t *testing.T) {
		assert.True(t, ZeroBRL().IsZero())
		assert.Equal(t, BRL, ZeroBRL().Currency())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("Add sums same-currency amounts", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromFloat(10.50))
		b := NewMoneyBRL(decimal.NewFromFloat(4.50))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("Add rejects currency mismatch", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(10))
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("MustAdd panics on currency mismatch", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(10))
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		assert.Panics(t, func() { a.MustAdd(b) })
	})

	t.Run("Subtract can go negative", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(10))
		b := NewMoneyBRL(decimal.NewFromInt(25))
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("Multiply scales the amount", func(t *testing.T) {
		m := NewMoneyBRL(decimal.NewFromFloat(7.25)).Multiply(decimal.NewFromInt(4))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(29)))
	})
}

func TestMoneyRoundCents(t *testing.T) {
	t.Run("rounds half up at two decimals", func(t *testing.T) {
		m := NewMoneyBRL(decimal.RequireFromString("208.335"))
		assert.Equal(t, "208.34", m.RoundCents().StringFixed(2))
	})

	t.Run("rounds down below half", func(t *testing.T) {
		m := NewMoneyBRL(decimal.RequireFromString("208.3333"))
		assert.Equal(t, "208.33", m.RoundCents().StringFixed(2))
	})
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyBRL(decimal.NewFromInt(10))
	b := NewMoneyBRL(decimal.NewFromInt(20))

	t.Run("Equals", func(t *testing.T) {
		assert.True(t, a.Equals(NewMoneyBRL(decimal.NewFromInt(10))))
		assert.False(t, a.Equals(b))
	})

	t.Run("LessThan and GreaterThan", func(t *testing.T) {
		less, err := a.LessThan(b)
		require.NoError(t, err)
		assert.True(t, less)

		greater, err := b.GreaterThan(a)
		require.NoError(t, err)
		assert.True(t, greater)
	})

	t.Run("comparison rejects currency mismatch", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.LessThan(usd)
		assert.Error(t, err)
	})
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trips through JSON", func(t *testing.T) {
		original := NewMoneyBRL(decimal.NewFromFloat(150.75))
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})
}
