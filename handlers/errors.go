package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/internal/status"
)

// errorJSON maps the shared error taxonomy onto stable HTTP code and
// message pairs. Anything unrecognized is an opaque 500.
func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, status.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
			"code":  "validation_error",
		})
	case errors.Is(err, status.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
			"code":  "user_not_found",
		})
	case errors.Is(err, status.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Event not found",
			"code":  "event_not_found",
		})
	case errors.Is(err, status.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Ticket not found",
			"code":  "ticket_not_found",
		})
	case errors.Is(err, status.ErrCredentialNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Credential not found",
			"code":  "credential_not_found",
		})
	case errors.Is(err, status.ErrSoldOut):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Event is sold out",
			"code":  "sold_out",
		})
	case errors.Is(err, status.ErrTicketRedeemed):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Ticket already redeemed",
			"code":  "ticket_redeemed",
		})
	case errors.Is(err, status.ErrDuplicateWallet):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Wallet address already registered",
			"code":  "duplicate_wallet",
		})
	case errors.Is(err, status.ErrSigningKey):
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Server configuration error: signing key not available",
			"code":  "configuration_error",
		})
	case errors.Is(err, status.ErrUpstream):
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "Credential issuance service unavailable",
			"code":  "upstream_failure",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
			"code":  "internal_error",
		})
	}
}
