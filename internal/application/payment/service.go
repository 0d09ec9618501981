package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/card"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/merchant"
	domainPayment "github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/metrics"
)

const logTag = "PaymentService"

type MerchantRegistry interface {
	ConfigFor(id string) (merchant.Config, bool)
	ValidateAmount(id string, amount int64) error
}

// Service runs the authorization pipeline: validation, issuer call, record
// storage. Validation is strictly ordered and stops at the first failure.
type Service struct {
	Repo             domainPayment.Repository
	Issuer           contracts.Issuer
	Merchants        MerchantRegistry
	Logger           logging.Logger
	Metrics          *metrics.Counters
	Now              func() time.Time
	DefaultMaxAmount int64
}

func (s *Service) ProcessPayment(ctx context.Context, req domainPayment.Request) (domainPayment.Result, error) {
	s.metrics().IncProcessed()

	if req.OperationType == "" {
		req.OperationType = domainPayment.OperationPurchase
	}

	s.logger().Info(ctx, "Starting process payment", logTag, map[string]any{
		"merchantId":    req.MerchantID,
		"amount":        req.Amount,
		"currency":      req.Currency,
		"operationType": req.OperationType,
	})

	if err := s.validate(ctx, req); err != nil {
		s.metrics().IncRejected()
		return domainPayment.Result{}, err
	}

	hashed, err := card.Hash(req.CardToken)
	if err != nil {
		return domainPayment.Result{}, fmt.Errorf("hash card token: %w", err)
	}
	masked := card.Mask(req.CardToken)

	resp, err := s.Issuer.Authorize(ctx, contracts.AuthorizeRequest{
		MerchantID:     req.MerchantID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		CardToken:      req.CardToken,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		s.metrics().IncIssuerFailure()
		s.logger().Error(ctx, "Failed to process payment: "+err.Error(), logTag, map[string]any{
			"merchantId": req.MerchantID,
			"maskedCard": masked,
			"kind":       domainPayment.Kind(err),
		})
		return domainPayment.Result{}, err
	}

	now := s.now()
	createdAt := resp.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	rec := domainPayment.TransactionRecord{
		TransactionID:   resp.TransactionID,
		MerchantID:      req.MerchantID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		HashedCardToken: hashed,
		MaskedCard:      masked,
		ExpirationDate:  req.ExpirationDate,
		OperationType:   req.OperationType,
		Status:          domainPayment.StatusFromIssuer(resp.Status),
		ResponseCode:    resp.ResponseCode,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}

	if err := s.Repo.Save(rec); err != nil {
		return domainPayment.Result{}, fmt.Errorf("save transaction %s: %w", rec.TransactionID, err)
	}

	if rec.Status == domainPayment.StatusCompleted {
		s.metrics().IncApproved()
	} else {
		s.metrics().IncDeclined()
	}

	s.logger().Info(ctx, "Successfully completed process payment", logTag, map[string]any{
		"transactionId": rec.TransactionID,
		"status":        rec.Status,
		"responseCode":  rec.ResponseCode,
		"maskedCard":    rec.MaskedCard,
	})

	return rec.Result(), nil
}

func (s *Service) validate(ctx context.Context, req domainPayment.Request) error {
	if req.MerchantID == "" || req.Amount == 0 || req.Currency == "" {
		return s.reject(ctx, "Missing required fields", domainPayment.NewValidationError(
			domainPayment.ErrMissingFields, "Missing required fields: merchantId, amount, currency"))
	}

	if err := card.ValidateToken(req.CardToken); err != nil {
		return s.reject(ctx, "Card token validation failed", domainPayment.NewValidationError(
			domainPayment.ErrInvalidCardToken, err.Error()))
	}

	if req.Amount <= 0 {
		return s.reject(ctx, "Amount validation failed", domainPayment.NewValidationError(
			domainPayment.ErrInvalidAmount, card.ErrAmountNotPositive.Error()))
	}

	if err := s.Merchants.ValidateAmount(req.MerchantID, req.Amount); err != nil {
		kind := domainPayment.ErrMerchantLimitExceeded
		if errors.Is(err, merchant.ErrInvalidMerchant) {
			kind = domainPayment.ErrUnknownMerchant
		}
		return s.reject(ctx, "Merchant validation failed", domainPayment.NewValidationError(kind, err.Error()))
	}

	ceiling := s.defaultMaxAmount()
	if cfg, ok := s.Merchants.ConfigFor(req.MerchantID); ok && cfg.MaxAmount > 0 {
		ceiling = cfg.MaxAmount
	}
	if err := card.ValidateAmount(req.Amount, ceiling); err != nil {
		return s.reject(ctx, "Transaction amount validation failed", domainPayment.NewValidationError(
			domainPayment.ErrAmountLimitExceeded, err.Error()))
	}

	if err := card.ValidateExpiration(req.ExpirationDate, s.now()); err != nil {
		return s.reject(ctx, "Expiration date validation failed", domainPayment.NewValidationError(
			domainPayment.ErrExpiredCard, "Card has expired or expiration date is invalid"))
	}

	return nil
}

func (s *Service) reject(ctx context.Context, msg string, err *domainPayment.ValidationError) error {
	s.logger().Warn(ctx, msg, logTag, map[string]any{
		"kind":   err.Kind.Error(),
		"reason": err.Reason,
	})
	return err
}

// GetPaymentStatus returns the stored transaction and refreshes its UpdatedAt.
func (s *Service) GetPaymentStatus(ctx context.Context, transactionID string) (domainPayment.Result, error) {
	if strings.TrimSpace(transactionID) == "" {
		return domainPayment.Result{}, s.reject(ctx, "Transaction ID validation failed", domainPayment.NewValidationError(
			domainPayment.ErrMissingTransactionID, "Transaction ID is required"))
	}

	notFound := domainPayment.NewValidationError(domainPayment.ErrTransactionNotFound,
		fmt.Sprintf("Transaction with ID %s not found", transactionID))

	rec, err := s.Repo.FindByID(transactionID)
	if err != nil {
		return domainPayment.Result{}, s.reject(ctx, "Transaction lookup failed", notFound)
	}

	if now := s.now(); now.After(rec.UpdatedAt) {
		rec.UpdatedAt = now
	}
	if err := s.Repo.Save(rec); err != nil {
		s.logger().Error(ctx, "Failed to refresh transaction", logTag, map[string]any{
			"transactionId": transactionID,
			"error":         err,
		})
		return domainPayment.Result{}, notFound
	}

	s.logger().Debug(ctx, "Transaction status retrieved", logTag, map[string]any{
		"transactionId": rec.TransactionID,
		"status":        rec.Status,
	})

	return rec.Result(), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) defaultMaxAmount() int64 {
	if s.DefaultMaxAmount > 0 {
		return s.DefaultMaxAmount
	}
	return card.DefaultMaxAmount
}

func (s *Service) logger() logging.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Nop()
}

// unrecorded absorbs counts when no Counters are wired.
var unrecorded metrics.Counters

func (s *Service) metrics() *metrics.Counters {
	if s.Metrics == nil {
		return &unrecorded
	}
	return s.Metrics
}
