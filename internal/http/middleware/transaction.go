package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/platform/apierr"
	"github.com/yungbote/university-backend/internal/platform/logger"
	"github.com/yungbote/university-backend/internal/transaction"
)

// Transaction runs every request inside one unit of work. The handler's output
// is buffered and only sent once the boundary has committed, or for a handled
// fault once it has rolled back. Unhandled faults discard the output and send a
// generic 500.
func Transaction(b *transaction.Boundary, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("middleware", "Transaction")
	return func(c *gin.Context) {
		ctx, scope, err := b.OnRequestStart(c.Request.Context())
		if err != nil {
			log.Error("begin transaction failed", "error", err, "path", c.FullPath())
			response.RespondError(c, http.StatusServiceUnavailable, "transaction_unavailable", response.ErrInternal)
			c.Abort()
			return
		}

		orig := c.Writer
		buf := newBufferedWriter(orig)
		c.Writer = buf
		c.Request = c.Request.WithContext(ctx)

		panicked := true
		defer func() {
			c.Writer = orig
			if panicked {
				_ = scope.End(ctx, transaction.OutcomeUnhandledFault, transaction.ErrPanic)
			}
		}()
		c.Next()
		panicked = false

		outcome, cause := classify(c, buf)
		endErr := scope.End(ctx, outcome, cause)
		c.Writer = orig
		if endErr != nil {
			log.Error("request rolled back", "outcome", outcome.String(), "error", endErr, "path", c.FullPath())
			c.JSON(http.StatusInternalServerError, response.ErrorEnvelope{
				Error: response.APIError{Message: response.ErrInternal.Error(), Code: "internal_error"},
			})
			return
		}
		buf.flushTo(orig)
	}
}

// classify decides the request outcome from recorded errors and the buffered
// status.
func classify(c *gin.Context, w *bufferedWriter) (transaction.Outcome, error) {
	if len(c.Errors) > 0 {
		for _, e := range c.Errors {
			if !apierr.Handled(e.Err) {
				return transaction.OutcomeUnhandledFault, e.Err
			}
		}
		return transaction.OutcomeHandledFault, c.Errors.Last().Err
	}
	switch status := w.Status(); {
	case status >= http.StatusInternalServerError:
		return transaction.OutcomeUnhandledFault, fmt.Errorf("handler responded %d", status)
	case status >= http.StatusBadRequest:
		return transaction.OutcomeHandledFault, nil
	}
	return transaction.OutcomeSuccess, nil
}
