package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

// AuthHandler exposes login endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	external config.ExternalConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, external config.ExternalConfig) *AuthHandler {
	return &AuthHandler{auth: authService, external: external}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token: token,
		User:  userResponse(account),
	})
}

// ExternalCallback handles GET /api/auth/external/callback. The
// provider glue upstream has already verified the identity; this
// endpoint only resolves it to an account and hands the client a
// token via redirect query parameters.
func (h *AuthHandler) ExternalCallback(c *fiber.Ctx) error {
	externalID := c.Query("external_id")
	email := c.Query("email")
	name := c.Query("name")

	account, token, _, err := h.auth.ExternalLogin(c.Context(), externalID, email, name)
	if err != nil {
		return err
	}

	userJSON, err := json.Marshal(userResponse(account))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	params := url.Values{}
	params.Set("token", token)
	params.Set("user", string(userJSON))
	return c.Redirect(h.external.RedirectBase+"?"+params.Encode(), http.StatusFound)
}

func userResponse(account *domain.StaffAccount) dto.UserResponse {
	return dto.UserResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  string(account.Role),
	}
}
