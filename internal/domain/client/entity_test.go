package client

import (
	"testing"
	"time"

	xerrors "alamin-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validClient() Client {
	return Client{
		ID:          1,
		FullName:    "Test Person",
		Nationality: "TR",
		Passport:    "U1234567",
		Phone:       "+90 555 000 0000",
	}
}

func TestClientValidate_RequiredFields(t *testing.T) {
	require.NoError(t, validClient().Validate())

	for _, clear := range []func(*Client){
		func(c *Client) { c.FullName = "" },
		func(c *Client) { c.Nationality = "" },
		func(c *Client) { c.Passport = "" },
		func(c *Client) { c.Phone = "" },
	} {
		c := validClient()
		clear(&c)
		require.ErrorIs(t, c.Validate(), xerrors.ErrInvalidInput)
	}
}

func TestClientValidate_ChecksTransactionFinancials(t *testing.T) {
	c := validClient()
	c.Transactions = []Transaction{{
		ID: 10,
		Financial: Financial{
			Due:      decimal.NewFromInt(-5),
			Currency: CurrencyUSD,
		},
	}}
	require.ErrorIs(t, c.Validate(), xerrors.ErrInvalidInput)
}

func TestFinancial_RemainingAndCurrency(t *testing.T) {
	f := Financial{
		Due:      decimal.NewFromInt(100),
		Paid:     decimal.NewFromInt(40),
		Currency: CurrencyEUR,
	}
	require.NoError(t, f.Validate())
	require.True(t, f.Remaining().Equal(decimal.NewFromInt(60)))

	f.Currency = "GBP"
	require.ErrorIs(t, f.Validate(), xerrors.ErrInvalidInput)
}

func TestEffectiveTimestamp_PrefersLastUpdated(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_500)
	c := Client{ID: 42, LastUpdated: at}
	require.Equal(t, at.UnixMilli(), c.EffectiveTimestamp())
}

func TestEffectiveTimestamp_FallsBackToIdentifier(t *testing.T) {
	c := Client{ID: 1_650_000_000_000}
	require.Equal(t, c.ID, c.EffectiveTimestamp())
}
