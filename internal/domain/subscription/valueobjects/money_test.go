package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_RoundsToTwoDecimals(t *testing.T) {
	m, err := NewMoney(19.999, CurrencyBRL)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), m.AmountInCents())
	assert.Equal(t, 20.0, m.Amount())
}

func TestNewMoney_NegativeAmount(t *testing.T) {
	_, err := NewMoney(-1.0, CurrencyBRL)

	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestNewMoney_InvalidCurrency(t *testing.T) {
	_, err := NewMoney(10.0, Currency("EUR"))

	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestMoney_AddSameCurrency(t *testing.T) {
	a, err := NewMoney(10.50, CurrencyUSD)
	require.NoError(t, err)
	b, err := NewMoney(4.25, CurrencyUSD)
	require.NoError(t, err)

	sum, err := a.Add(b)

	require.NoError(t, err)
	assert.Equal(t, int64(1475), sum.AmountInCents())
	assert.Equal(t, CurrencyUSD, sum.Currency())
}

func TestMoney_AddCurrencyMismatch(t *testing.T) {
	a, err := NewMoney(10.0, CurrencyUSD)
	require.NoError(t, err)
	b, err := NewMoney(10.0, CurrencyBRL)
	require.NoError(t, err)

	_, err = a.Add(b)

	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_Multiply(t *testing.T) {
	m, err := NewMoney(9.99, CurrencyBRL)
	require.NoError(t, err)

	doubled, err := m.Multiply(2)

	require.NoError(t, err)
	assert.Equal(t, int64(1998), doubled.AmountInCents())
}

func TestMoney_MultiplyNegative(t *testing.T) {
	m, err := NewMoney(9.99, CurrencyBRL)
	require.NoError(t, err)

	_, err = m.Multiply(-1)

	assert.ErrorIs(t, err, ErrNegativeMultiplier)
}

func TestMoney_Equals(t *testing.T) {
	a, err := NewMoney(10.0, CurrencyBRL)
	require.NoError(t, err)
	b, err := NewMoney(10.0, CurrencyBRL)
	require.NoError(t, err)
	c, err := NewMoney(10.0, CurrencyUSD)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestParseCurrency(t *testing.T) {
	currency, err := ParseCurrency("BRL")
	require.NoError(t, err)
	assert.Equal(t, CurrencyBRL, currency)

	_, err = ParseCurrency("GBP")
	assert.Error(t, err)
}
