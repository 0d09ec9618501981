package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/correlation"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
)

const (
	DefaultTimeout = 5 * time.Second

	logTag = "IssuerClient"
)

// HTTPClient calls the issuer's REST interface. Every call is a single
// attempt bounded by the client timeout.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		logger: logger,
	}
}

func (c *HTTPClient) Authorize(ctx context.Context, req contracts.AuthorizeRequest) (contracts.IssuerResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return contracts.IssuerResponse{}, fmt.Errorf("encode authorize request: %w", err)
	}

	c.logger.Debug(ctx, "HTTP POST /payments", logTag, map[string]any{
		"merchantId": req.MerchantID,
		"amount":     req.Amount,
		"currency":   req.Currency,
	})

	return c.do(ctx, http.MethodPost, "/payments", body)
}

func (c *HTTPClient) Status(ctx context.Context, transactionID string) (contracts.IssuerResponse, error) {
	path := "/payments/" + url.PathEscape(transactionID)

	c.logger.Debug(ctx, "HTTP GET "+path, logTag, map[string]any{
		"transactionId": transactionID,
	})

	return c.do(ctx, http.MethodGet, path, nil)
}

type errorBody struct {
	Message   string `json:"message"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	ErrorCode string `json:"errorCode"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) (contracts.IssuerResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return contracts.IssuerResponse{}, fmt.Errorf("build issuer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id, ok := correlation.FromContext(ctx); ok {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(ctx, "Issuer unreachable", logTag, map[string]any{
			"method": method,
			"path":   path,
			"error":  err,
		})
		return contracts.IssuerResponse{}, &payment.IssuerError{
			Class:   payment.ErrServiceUnavailable,
			Message: "Issuer service unavailable",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(ctx, "Issuer response unreadable", logTag, map[string]any{
			"method":     method,
			"path":       path,
			"statusCode": resp.StatusCode,
			"error":      err,
		})
		return contracts.IssuerResponse{}, &payment.IssuerError{
			Class:   payment.ErrServiceUnavailable,
			Message: "Issuer service unavailable",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)

		message := eb.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		code := eb.Code
		if code == "" {
			code = eb.ErrorCode
		}
		if code == "" {
			code = eb.Error
		}

		c.logger.Error(ctx, "Issuer rejected request", logTag, map[string]any{
			"method":         method,
			"path":           path,
			"upstreamStatus": resp.StatusCode,
			"upstreamBody":   string(raw),
		})
		return contracts.IssuerResponse{}, &payment.IssuerError{
			Class:          payment.ClassifyIssuerStatus(resp.StatusCode),
			UpstreamStatus: resp.StatusCode,
			Message:        message,
			Code:           code,
		}
	}

	var out contracts.IssuerResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error(ctx, "Issuer response malformed", logTag, map[string]any{
			"method":       method,
			"path":         path,
			"upstreamBody": string(raw),
			"error":        err,
		})
		return contracts.IssuerResponse{}, &payment.IssuerError{
			Class:   payment.ErrServiceUnavailable,
			Message: "Issuer returned an unreadable response",
			Err:     err,
		}
	}

	c.logger.Debug(ctx, fmt.Sprintf("HTTP %s %s - %d", method, path, resp.StatusCode), logTag, map[string]any{
		"transactionId": out.TransactionID,
		"status":        out.Status,
		"responseCode":  out.ResponseCode,
	})

	return out, nil
}
