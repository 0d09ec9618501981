package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
)

func NewRouter(handler *PaymentHandler, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CorrelationID(), RequestLogger(logger))

	r.GET("/health", handler.Health)
	r.GET("/metrics", handler.MetricsSnapshot)
	r.POST("/payments", handler.CreatePayment)
	r.GET("/payments/:transactionId", handler.GetPayment)

	return r
}
