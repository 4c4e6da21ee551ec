package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainLoan "microlend-backend/internal/domain/loan"
)

// writeDomainError maps engine errors onto HTTP responses. Validation
// messages pass through verbatim; state errors carry their status-specific
// explanation.
func writeDomainError(c echo.Context, err error) error {
	var ve *domainLoan.ValidationError
	var se *domainLoan.StateError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
	case errors.As(err, &se):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: se.Error()})
	case errors.Is(err, domainLoan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, domainLoan.ErrNotBorrower):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
