package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
	"github.com/yungbote/university-backend/internal/platform/apierr"
)

// ErrInternal is the only message clients see for unhandled faults.
var ErrInternal = errors.New("internal server error")

// Classify maps a request error onto its HTTP form. Validation and missing
// entities are client faults. Storage faults and cancellation are internal.
func Classify(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	var vf *mediator.ValidationFault
	if errors.As(err, &vf) {
		e := apierr.BadRequest("validation_failed", err)
		e.Details = vf.Fields
		return e
	}
	if errors.Is(err, shared.ErrNotFound) {
		return apierr.NotFound("not_found", err)
	}
	if errors.Is(err, mediator.ErrHandlerNotFound) {
		return apierr.Internal("handler_not_found", err)
	}
	return apierr.Internal("internal_error", err)
}

// RespondFault records err on the context for the transaction middleware and
// writes the error envelope. Internal faults never expose their cause.
func RespondFault(c *gin.Context, err error) {
	ae := Classify(err)
	_ = c.Error(ae)
	if !apierr.Handled(ae) {
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: ErrInternal.Error(), Code: "internal_error"},
		})
		return
	}
	c.JSON(ae.Status, ErrorEnvelope{
		Error: APIError{Message: ae.Error(), Code: ae.Code, Fields: ae.Details},
	})
}
