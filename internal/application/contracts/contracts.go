package contracts

import (
	"context"
	"time"
)

// IssuerResponse is the issuer's answer for a single authorization.
type IssuerResponse struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	ResponseCode  string    `json:"responseCode"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AuthorizeRequest struct {
	MerchantID     string `json:"merchantId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	CardToken      string `json:"cardToken"`
	ExpirationDate string `json:"expirationDate"`
}

// Issuer talks to the issuing bank. Failures are *payment.IssuerError.
type Issuer interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (IssuerResponse, error)
	Status(ctx context.Context, transactionID string) (IssuerResponse, error)
}
