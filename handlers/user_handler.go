package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register - POST /api/users
func (h *UserHandler) Register(c echo.Context) error {
	var req models.InsertUser
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid user data",
			"code":  "validation_error",
		})
	}

	user, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser - GET /api/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.PathParam("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByWallet - GET /api/users/wallet/:address
func (h *UserHandler) GetUserByWallet(c echo.Context) error {
	user, err := h.userService.GetUserByWallet(c.Request().Context(), c.PathParam("address"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ConnectWallet - POST /api/auth/connect
func (h *UserHandler) ConnectWallet(c echo.Context) error {
	var req struct {
		WalletAddress string  `json:"walletAddress"`
		MocaID        *string `json:"mocaId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}

	user, err := h.userService.ConnectWallet(c.Request().Context(), req.WalletAddress, req.MocaID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}
