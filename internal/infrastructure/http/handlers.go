package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/metrics"
)

type PaymentService interface {
	ProcessPayment(ctx context.Context, req payment.Request) (payment.Result, error)
	GetPaymentStatus(ctx context.Context, transactionID string) (payment.Result, error)
}

type PaymentHandler struct {
	Service PaymentService
	Metrics *metrics.Counters
}

type CreatePaymentRequest struct {
	MerchantID     string `json:"merchantId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	CardToken      string `json:"cardToken"`
	ExpirationDate string `json:"expirationDate"`
	OperationType  string `json:"operationType"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "InvalidRequestBody", Message: "invalid request body"})
		return
	}

	op, ok := payment.ParseOperationType(req.OperationType)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "InvalidOperationType",
			Message: "Operation type must be PURCHASE, REFUND, or VOID",
		})
		return
	}

	result, err := h.Service.ProcessPayment(c.Request.Context(), payment.Request{
		MerchantID:     req.MerchantID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		CardToken:      req.CardToken,
		ExpirationDate: req.ExpirationDate,
		OperationType:  op,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	result, err := h.Service.GetPaymentStatus(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PaymentHandler) MetricsSnapshot(c *gin.Context) {
	if h.Metrics == nil {
		c.JSON(http.StatusOK, metrics.Snapshot{})
		return
	}
	c.JSON(http.StatusOK, h.Metrics.Snapshot())
}

// StatusFor maps an error kind to the HTTP status returned to callers.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, payment.ErrTransactionNotFound),
		errors.Is(err, payment.ErrIssuerNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrIssuerBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	}

	var verr *payment.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := StatusFor(err)
	body := errorResponse{Error: payment.Kind(err), Message: err.Error()}

	var ierr *payment.IssuerError
	if errors.As(err, &ierr) {
		body.Message = ierr.Message
		body.Code = ierr.Code
	}
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
	}

	c.JSON(status, body)
}
