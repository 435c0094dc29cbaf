package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/services"
)

type CredentialHandler struct {
	credentialService *services.CredentialService
}

func NewCredentialHandler(credentialService *services.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentialService: credentialService}
}

// CredentialsByUser - GET /api/credentials/user/:userId
func (h *CredentialHandler) CredentialsByUser(c echo.Context) error {
	credentials, err := h.credentialService.CredentialsByUser(c.Request().Context(), c.PathParam("userId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, credentials)
}

// Record - POST /api/credentials
func (h *CredentialHandler) Record(c echo.Context) error {
	var req models.InsertFanCredential
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid credential data",
			"code":  "validation_error",
		})
	}

	credential, err := h.credentialService.Record(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, credential)
}

// Verify - POST /api/credentials/verify
func (h *CredentialHandler) Verify(c echo.Context) error {
	var req struct {
		UserID         string `json:"userId"`
		ArtistName     string `json:"artistName"`
		CredentialType string `json:"credentialType"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}

	verified, err := h.credentialService.Verify(c.Request().Context(), req.UserID, req.ArtistName, req.CredentialType)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"verified": verified})
}
