package card_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/card"
)

func TestValidateToken_ShouldReturnFirstFailingRule(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", card.ErrTokenEmpty},
		{"blank", "     ", card.ErrTokenEmpty},
		{"short", "tok_abc", card.ErrTokenTooShort},
		{"charset", "tok-abc-123xyz", card.ErrTokenCharset},
		{"blocked", "tok_abc123999", card.ErrTokenBlocked},
		{"blocked wins over invalid pattern", "tok_0000_999", card.ErrTokenBlocked},
		{"invalid pattern", "tok_0000abcd", card.ErrTokenInvalid},
		{"valid", "tok_abc123xyz", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := card.ValidateToken(tc.token)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	require.ErrorIs(t, card.ValidateAmount(0, 0), card.ErrAmountNotPositive)
	require.ErrorIs(t, card.ValidateAmount(-5, 100), card.ErrAmountNotPositive)
	require.NoError(t, card.ValidateAmount(card.DefaultMaxAmount, 0))

	err := card.ValidateAmount(card.DefaultMaxAmount+1, 0)
	var limitErr *card.AmountLimitError
	require.ErrorAs(t, err, &limitErr)
	require.Equal(t, card.DefaultMaxAmount, limitErr.Limit)

	err = card.ValidateAmount(600, 500)
	require.EqualError(t, err, "Transaction amount exceeds maximum limit of 500")
}

func TestValidateExpiration(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	require.ErrorIs(t, card.ValidateExpiration("13/25", now), card.ErrExpirationFormat)
	require.ErrorIs(t, card.ValidateExpiration("1/27", now), card.ErrExpirationFormat)
	require.ErrorIs(t, card.ValidateExpiration("", now), card.ErrExpirationFormat)
	require.ErrorIs(t, card.ValidateExpiration("12/20", now), card.ErrExpired)
	require.ErrorIs(t, card.ValidateExpiration("09/26", now), card.ErrExpired)

	require.NoError(t, card.ValidateExpiration("10/26", now), "current month must pass")
	require.NoError(t, card.ValidateExpiration("11/26", now))
	require.NoError(t, card.ValidateExpiration("01/27", now))
}

func TestHash_ShouldBeDeterministicSHA256(t *testing.T) {
	first, err := card.Hash("tok_abc123xyz")
	require.NoError(t, err)
	second, err := card.Hash("tok_abc123xyz")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first, 64)
	require.NotContains(t, first, "tok_abc123xyz")

	// separators are stripped before hashing
	spaced, err := card.Hash("1234-5678 9012")
	require.NoError(t, err)
	plain, err := card.Hash("123456789012")
	require.NoError(t, err)
	require.Equal(t, plain, spaced)

	_, err = card.Hash("")
	require.ErrorIs(t, err, card.ErrEmptyInput)
}

func TestMask(t *testing.T) {
	require.Equal(t, "****7890", card.Mask("1234567890"))
	require.Equal(t, "****3xyz", card.Mask("tok_abc123xyz"))
	require.Equal(t, "****", card.Mask("abc"))
	require.Equal(t, "****", card.Mask(""))
	require.Equal(t, "****3456", card.Mask("1234 5678 9012 3456"))

	masked := card.Mask("tok_abc123xyz")
	require.True(t, strings.HasPrefix(masked, "****"))
	require.NotContains(t, masked, "tok_abc123xyz")
}
