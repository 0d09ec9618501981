package payment

import (
	"strings"
	"time"
)

type OperationType string

const (
	OperationPurchase OperationType = "PURCHASE"
	OperationRefund   OperationType = "REFUND"
	OperationVoid     OperationType = "VOID"
)

// ParseOperationType accepts the three known operations; an empty value
// defaults to PURCHASE.
func ParseOperationType(s string) (OperationType, bool) {
	switch op := OperationType(strings.ToUpper(strings.TrimSpace(s))); op {
	case "":
		return OperationPurchase, true
	case OperationPurchase, OperationRefund, OperationVoid:
		return op, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusDeclined  Status = "DECLINED"
)

// IssuerApproved is the only issuer status that yields a completed transaction.
const IssuerApproved = "APPROVED"

func StatusFromIssuer(issuerStatus string) Status {
	if issuerStatus == IssuerApproved {
		return StatusCompleted
	}
	return StatusDeclined
}

// Request is an inbound authorization request. Amount is in minor currency units.
type Request struct {
	MerchantID     string
	Amount         int64
	Currency       string
	CardToken      string
	ExpirationDate string
	OperationType  OperationType
}

// TransactionRecord is what the store keeps for an authorized request. The raw
// card token is never part of it.
type TransactionRecord struct {
	TransactionID   string
	MerchantID      string
	Amount          int64
	Currency        string
	HashedCardToken string
	MaskedCard      string
	ExpirationDate  string
	OperationType   OperationType
	Status          Status
	ResponseCode    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Result is the caller-facing projection of a TransactionRecord.
type Result struct {
	TransactionID string        `json:"transactionId"`
	Status        Status        `json:"status"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	MaskedCard    string        `json:"maskedCard"`
	OperationType OperationType `json:"operationType"`
	ResponseCode  string        `json:"responseCode"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (r TransactionRecord) Result() Result {
	return Result{
		TransactionID: r.TransactionID,
		Status:        r.Status,
		Amount:        r.Amount,
		Currency:      r.Currency,
		MaskedCard:    r.MaskedCard,
		OperationType: r.OperationType,
		ResponseCode:  r.ResponseCode,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
