package payment

import (
	"errors"
	"fmt"
)

// Validation kinds.
var (
	ErrMissingFields         = errors.New("MissingFields")
	ErrInvalidCardToken      = errors.New("InvalidCardToken")
	ErrInvalidAmount         = errors.New("InvalidAmount")
	ErrUnknownMerchant       = errors.New("UnknownMerchant")
	ErrMerchantLimitExceeded = errors.New("MerchantLimitExceeded")
	ErrAmountLimitExceeded   = errors.New("AmountLimitExceeded")
	ErrExpiredCard           = errors.New("ExpiredCard")
	ErrMissingTransactionID  = errors.New("MissingTransactionId")
	ErrTransactionNotFound   = errors.New("TransactionNotFound")
)

// Issuer kinds.
var (
	ErrServiceUnavailable = errors.New("ServiceUnavailable")
	ErrUpstreamRejected   = errors.New("UpstreamRejected")
	ErrIssuerNotFound     = errors.New("NotFound")
	ErrIssuerBadRequest   = errors.New("BadRequest")
)

type ValidationError struct {
	Kind   error
	Reason string
}

func NewValidationError(kind error, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IssuerError is a classified failure of a call to the issuing bank.
// UpstreamStatus is zero when no response was received.
type IssuerError struct {
	Class          error
	UpstreamStatus int
	Message        string
	Code           string
	Err            error
}

func (e *IssuerError) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("issuer rejected request with status %d: %s", e.UpstreamStatus, e.Message)
	}
	return e.Message
}

func (e *IssuerError) Unwrap() []error {
	errs := []error{e.Class}
	if e.UpstreamStatus != 0 {
		errs = append(errs, ErrUpstreamRejected)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ClassifyIssuerStatus maps an issuer HTTP error status to the kind surfaced
// to callers.
func ClassifyIssuerStatus(status int) error {
	switch {
	case status == 404:
		return ErrIssuerNotFound
	case status >= 400 && status < 500:
		return ErrIssuerBadRequest
	default:
		return ErrServiceUnavailable
	}
}

// Kind returns the name of the outermost known kind in err, or "InternalError".
func Kind(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Kind != nil {
		return verr.Kind.Error()
	}
	var ierr *IssuerError
	if errors.As(err, &ierr) && ierr.Class != nil {
		return ierr.Class.Error()
	}
	return "InternalError"
}
