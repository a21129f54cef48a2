package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"calc-ledger/internal/calculator"
	"calc-ledger/internal/repository"
	"calc-ledger/internal/service"
)

// respondError renders err as {"error": msg}. Server-side failures are logged
// and answered with a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(map[string]any{
			"path":       c.FullPath(),
			"request_id": c.GetString(requestIDKey),
		}).Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, calculator.ErrDivisionByZero),
		errors.Is(err, calculator.ErrNegativeOperand),
		errors.Is(err, service.ErrNonFiniteResult):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusBadRequest, service.ErrUsernameTaken.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, service.ErrTokenExpired.Error()
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, service.ErrInvalidToken.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, service.ErrUnauthorized.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, service.ErrForbidden.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, repository.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
