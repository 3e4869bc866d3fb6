package mediator

import (
	"errors"
	"time"

	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

// Validatable is implemented by requests that check their own input.
type Validatable interface {
	Validate() error
}

// ValidationBehavior rejects invalid requests before their handler runs.
func ValidationBehavior() Behavior {
	return func(next HandlerFunc) HandlerFunc {
		return func(dbc dbctx.Context, req Request) (any, error) {
			v, ok := req.(Validatable)
			if !ok {
				return next(dbc, req)
			}
			err := v.Validate()
			if err == nil {
				return next(dbc, req)
			}
			var vf *ValidationFault
			if !errors.As(err, &vf) {
				vf = &ValidationFault{Fields: map[string]string{"request": err.Error()}}
			}
			if vf.Request == "" {
				vf.Request = RequestName(req)
			}
			return nil, vf
		}
	}
}

// LoggingBehavior logs each handler invocation at debug level and failures at warn.
func LoggingBehavior(log *logger.Logger) Behavior {
	if log == nil {
		log = logger.Nop()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(dbc dbctx.Context, req Request) (any, error) {
			name := RequestName(req)
			start := time.Now()
			res, err := next(dbc, req)
			if err != nil {
				log.Warn("request failed", "request", name, "kind", req.Kind().String(), "error", err, "duration", time.Since(start))
				return res, err
			}
			log.Debug("request handled", "request", name, "kind", req.Kind().String(), "duration", time.Since(start))
			return res, nil
		}
	}
}

// FlushBehavior applies a successful command's queued writes to the open
// transaction so later requests in the same scope read them. It never commits.
func FlushBehavior() Behavior {
	return func(next HandlerFunc) HandlerFunc {
		return func(dbc dbctx.Context, req Request) (any, error) {
			res, err := next(dbc, req)
			if err != nil || req.Kind() != KindCommand {
				return res, err
			}
			if err := dbc.Flush(); err != nil {
				return nil, err
			}
			return res, nil
		}
	}
}
