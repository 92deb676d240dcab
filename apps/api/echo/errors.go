package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

var (
	errMissingToken       = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	errInvalidToken       = echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountDeactivated = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired     = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden      = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound       = echo.NewHTTPError(http.StatusNotFound, "not found")
	errRequestCancelled   = echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
)

// appCause returns the first error of the chain of err that has a response of its own.
// Typed errors are kept even when they name a sentinel cause.
func appCause(err error) error {
	for err != nil {
		switch err.(type) {
		case *echo.HTTPError, validator.ValidationErrors, *core.ValidationError,
			*table.ColumnError, *table.PageSizeError, *listing.StatusError:
			return err
		}
		causer, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = causer.Cause()
	}
	return err
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := appCause(err)
		switch cause {
		case listing.ErrNotFound, user.ErrNotFound:
			cause = errHttpNotFound
		case listing.ErrForbidden:
			cause = errHttpForbidden
		case context.Canceled, context.DeadlineExceeded:
			cause = errRequestCancelled
		case table.ErrEmptyColumns, table.ErrLastColumn:
			cause = core.NewValidationError(nil, core.FieldError{Field: "columns", Error: cause.Error()})
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *table.ColumnError:
			code = http.StatusBadRequest
			message = map[string]string{origErr.Param: origErr.Error()}
		case *table.PageSizeError:
			code = http.StatusBadRequest
			message = map[string]string{pageSizeParam: origErr.Error()}
		case *listing.StatusError:
			code = http.StatusBadRequest
			message = map[string]string{"status": origErr.Error()}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			args := []interface{}{errors.Wrap(err, msg)}
			if sess, sErr := getContextSession(ctx); sErr == nil {
				args = append(args, sess)
			}
			logger.Error(msg, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
