package merchant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/merchant"
)

func TestDefaultRegistry_ShouldHoldFiveMerchants(t *testing.T) {
	r := merchant.DefaultRegistry()

	require.Equal(t, []string{
		"MERCHANT_001", "MERCHANT_002", "MERCHANT_003", "MERCHANT_004", "MERCHANT_005",
	}, r.IDs())

	cfg, ok := r.ConfigFor("MERCHANT_002")
	require.True(t, ok)
	require.Equal(t, "Banco Santander", cfg.Name)
	require.Equal(t, int64(2_000_000), cfg.MaxAmount)

	require.True(t, r.IsValid("MERCHANT_005"))
	require.False(t, r.IsValid("MERCHANT_999"))

	_, ok = r.ConfigFor("MERCHANT_999")
	require.False(t, ok)
}

func TestValidateAmount(t *testing.T) {
	r := merchant.DefaultRegistry()

	require.NoError(t, r.ValidateAmount("MERCHANT_001", 1_000_000))
	require.ErrorIs(t, r.ValidateAmount("UNKNOWN", 10), merchant.ErrInvalidMerchant)

	err := r.ValidateAmount("MERCHANT_001", 1_000_001)
	var limitErr *merchant.LimitError
	require.ErrorAs(t, err, &limitErr)
	require.EqualError(t, err, "Amount exceeds maximum limit of 1000000 CLP for Banco Estado")
}

func TestLoad(t *testing.T) {
	doc := `
- id: SHOP_A
  name: Shop A
  currency: USD
  maxAmount: 5000
`
	r, err := merchant.Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"SHOP_A"}, r.IDs())

	cfg, _ := r.ConfigFor("SHOP_A")
	require.Equal(t, "USD", cfg.Currency)
	require.Equal(t, int64(5000), cfg.MaxAmount)

	_, err = merchant.Load(strings.NewReader("- name: nameless\n  maxAmount: 1\n"))
	require.Error(t, err)

	_, err = merchant.Load(strings.NewReader("- id: ZERO\n  maxAmount: 0\n"))
	require.Error(t, err)
}
