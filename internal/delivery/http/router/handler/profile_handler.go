package handler

import (
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler holds dependencies for profile-related handlers
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents the request body for a profile update.
// The account type field is bound so a supplied value can be rejected
// explicitly; it is never applied.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
	Type         *string `json:"type"`
}

// ProfileResponse is the profile view shared by the profile endpoints
// and the offer creator details.
type ProfileResponse struct {
	User         string `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at"`
}

// GetProfile handles retrieving a single profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid profile ID")
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles a partial profile update by the owner
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid profile ID")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	// The account type is fixed at registration
	if req.Type != nil {
		return response.BadRequest(c, "ROLE_IMMUTABLE", "Account type cannot be changed after registration")
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), actorID, id, usecase.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		File:         req.File,
		Location:     req.Location,
		Tel:          req.Tel,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user))
}

// ListBusinessProfiles handles listing every business account
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	users, err := h.profileUC.ListBusinessProfiles(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponses(users))
}

// ListCustomerProfiles handles listing every customer account
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	users, err := h.profileUC.ListCustomerProfiles(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponses(users))
}

func toProfileResponse(user *entity.User) ProfileResponse {
	return ProfileResponse{
		User:         user.ID.String(),
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		File:         user.File,
		Location:     user.Location,
		Tel:          user.Tel,
		Description:  user.Description,
		WorkingHours: user.WorkingHours,
		Type:         user.Type.String(),
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func toProfileResponses(users []*entity.User) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toProfileResponse(u))
	}

	return out
}
