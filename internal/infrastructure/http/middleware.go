package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/correlation"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
)

const logTag = "HTTP"

// CorrelationID adopts the inbound X-Correlation-Id or generates one, echoes
// it on the response and binds it to the request context.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := correlation.Resolve(c.GetHeader(correlation.Header))

		c.Header(correlation.Header, id)
		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), id))

		c.Next()
	}
}

func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		method := c.Request.Method
		path := c.Request.URL.Path
		start := time.Now()

		incoming := map[string]any{
			"method":    method,
			"url":       path,
			"query":     c.Request.URL.RawQuery,
			"userAgent": c.Request.UserAgent(),
			"ip":        c.ClientIP(),
		}
		if body := peekJSONBody(c.Request); body != nil {
			incoming["body"] = logging.Redact(body)
		}
		logger.Info(ctx, fmt.Sprintf("Incoming %s %s", method, path), logTag, incoming)

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start).Milliseconds()
		fields := map[string]any{
			"method":     method,
			"url":        path,
			"statusCode": status,
			"duration":   duration,
		}

		if status >= http.StatusBadRequest {
			if len(c.Errors) > 0 {
				fields["error"] = c.Errors.Last().Err
			}
			logger.Error(ctx, fmt.Sprintf("Failed %s %s - %d in %dms", method, path, status, duration), logTag, fields)
			return
		}

		fields["responseSize"] = c.Writer.Size()
		logger.Info(ctx, fmt.Sprintf("Completed %s %s - %d in %dms", method, path, status, duration), logTag, fields)
	}
}

// peekJSONBody decodes a JSON object body for logging and leaves the request
// body readable for the handler.
func peekJSONBody(r *http.Request) map[string]any {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	raw, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	var body map[string]any
	if json.Unmarshal(raw, &body) != nil {
		return nil
	}
	return body
}
