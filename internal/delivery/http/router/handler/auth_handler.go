// Package handler contains the echo endpoint handlers. Each handler
// binds and validates the request, delegates to a usecase, and renders
// the result through the response envelope.
package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AuthHandler holds dependencies for registration and login handlers
type AuthHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Username         string `json:"username" validate:"required,min=3,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the token payload returned after registration or login
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   string `json:"user_id"`
}

// Register handles new account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	out, err := h.accountUC.Register(c.Request().Context(), usecase.RegisterInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		RepeatedPassword: req.RepeatedPassword,
		Type:             req.Type,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toAuthResponse(out))
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	out, err := h.accountUC.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(out))
}

func toAuthResponse(out *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		Token:    out.Token,
		Username: out.Username,
		Email:    out.Email,
		UserID:   out.UserID.String(),
	}
}
