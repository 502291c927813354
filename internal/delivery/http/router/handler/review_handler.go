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

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler holds dependencies for review-related handlers
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// CreateReviewRequest represents the request body for posting a review
type CreateReviewRequest struct {
	BusinessUserID uuid.UUID `json:"business_user" validate:"required"`
	Rating         int       `json:"rating" validate:"required"`
	Description    string    `json:"description"`
}

// UpdateReviewRequest represents the request body for a partial review update
type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

// ReviewResponse is the full review view
type ReviewResponse struct {
	ID           string `json:"id"`
	BusinessUser string `json:"business_user"`
	Reviewer     string `json:"reviewer"`
	Rating       int    `json:"rating"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CreateReview handles posting a review about a business account
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), actorID, usecase.CreateReviewInput{
		BusinessUserID: req.BusinessUserID,
		Rating:         req.Rating,
		Description:    req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toReviewResponse(review))
}

// ListReviews handles listing reviews with optional filters
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	input := usecase.ListReviewsInput{
		Ordering: c.QueryParam("ordering"),
	}

	if v := c.QueryParam("business_user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid business_user_id")
		}
		input.BusinessUserID = &id
	}

	if v := c.QueryParam("reviewer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid reviewer_id")
		}
		input.ReviewerID = &id
	}

	reviews, err := h.reviewUC.ListReviews(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}

	return response.Success(c, http.StatusOK, out)
}

// GetReview handles retrieving a single review
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid review ID")
	}

	review, err := h.reviewUC.GetReview(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}

// UpdateReview handles a partial review update by the reviewer
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid review ID")
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), actorID, id, usecase.UpdateReviewInput{
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}

// DeleteReview handles removing a review by its reviewer
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid review ID")
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), actorID, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toReviewResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		BusinessUser: review.BusinessUserID.String(),
		Reviewer:     review.ReviewerID.String(),
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    review.UpdatedAt.Format(time.RFC3339),
	}
}
