package middleware

import (
	"errors"
	"net/http"

	"eventhub/internal/transport/httpdto"
	apperrors "eventhub/pkg/errors"
	"eventhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors pushed with c.Error into JSON responses. Handlers
// report failures and this middleware decides the status, so precondition and
// authorization failures always produce an explicit response.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("%s %s: %s", c.Request.Method, c.Request.URL.Path, err.Error())
		}
		if c.Writer.Written() {
			return
		}

		status, code := statusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
	}
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, apperrors.ErrNoPlace):
		return http.StatusPreconditionFailed, "PRECONDITION_FAILED"
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNotUploaded):
		return http.StatusBadRequest, "INVALID_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
