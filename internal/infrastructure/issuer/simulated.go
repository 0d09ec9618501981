package issuer

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
)

const (
	simulatedLimit = int64(1_000_000)

	CodeApproved      = "00"
	CodeDeclined      = "05"
	CodeLimitExceeded = "LIMIT_EXCEEDED"
	CodeCardBlocked   = "CARD_BLOCKED"
)

// Simulated is an in-process issuer for local runs. It declines amounts over
// its limit and tokens ending in 999, and approves the rest at random.
type Simulated struct {
	Approve func() bool
	Now     func() time.Time
	Logger  logging.Logger

	mu     sync.RWMutex
	issued map[string]contracts.IssuerResponse
}

func NewSimulated(logger logging.Logger) *Simulated {
	return &Simulated{
		Approve: func() bool { return rand.Intn(100) < 80 },
		Now:     time.Now,
		Logger:  logger,
		issued:  make(map[string]contracts.IssuerResponse),
	}
}

func generateIssuerTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("ISS_%d_%s", now.UnixNano(), suffix)
}

func (s *Simulated) Authorize(ctx context.Context, req contracts.AuthorizeRequest) (contracts.IssuerResponse, error) {
	now := s.Now().UTC()
	resp := contracts.IssuerResponse{
		TransactionID: generateIssuerTransactionID(now),
		CreatedAt:     now,
	}

	switch {
	case req.Amount > simulatedLimit:
		resp.Status, resp.ResponseCode = "DECLINED", CodeLimitExceeded
	case strings.HasSuffix(req.CardToken, "999"):
		resp.Status, resp.ResponseCode = "DECLINED", CodeCardBlocked
	case s.Approve():
		resp.Status, resp.ResponseCode = payment.IssuerApproved, CodeApproved
	default:
		resp.Status, resp.ResponseCode = "DECLINED", CodeDeclined
	}

	s.mu.Lock()
	if s.issued == nil {
		s.issued = make(map[string]contracts.IssuerResponse)
	}
	s.issued[resp.TransactionID] = resp
	s.mu.Unlock()

	if s.Logger != nil {
		s.Logger.Debug(ctx, "Simulated issuer decision", logTag, map[string]any{
			"transactionId": resp.TransactionID,
			"status":        resp.Status,
			"responseCode":  resp.ResponseCode,
		})
	}

	return resp, nil
}

func (s *Simulated) Status(ctx context.Context, transactionID string) (contracts.IssuerResponse, error) {
	s.mu.RLock()
	resp, ok := s.issued[transactionID]
	s.mu.RUnlock()

	if !ok {
		if s.Logger != nil {
			s.Logger.Error(ctx, "Simulated issuer has no such transaction", logTag, map[string]any{
				"transactionId":  transactionID,
				"upstreamStatus": http.StatusNotFound,
			})
		}
		return contracts.IssuerResponse{}, &payment.IssuerError{
			Class:          payment.ErrIssuerNotFound,
			UpstreamStatus: http.StatusNotFound,
			Message:        fmt.Sprintf("transaction %s not found", transactionID),
			Code:           "NOT_FOUND",
		}
	}
	return resp, nil
}
