package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/auth"
	"github.com/uuzor/mocalake/internal/status"
)

type AuthHandler struct {
	issuer *auth.TokenIssuer
}

// NewAuthHandler accepts a nil issuer when no signing key is
// configured; token requests then fail with a configuration error.
func NewAuthHandler(issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// IssueToken - POST /api/auth/jwt
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req struct {
		PartnerID string `json:"partnerId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}
	if req.PartnerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Partner ID required",
			"code":  "validation_error",
		})
	}

	if h.issuer == nil {
		return errorJSON(c, status.ErrSigningKey)
	}

	token, err := h.issuer.Issue(req.PartnerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
