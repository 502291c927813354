package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// InfoHandlerParams holds dependencies for InfoHandler, injected by Fx.
type InfoHandlerParams struct {
	fx.In

	InfoUC usecase.InfoUsecase
	Logger *slog.Logger
}

// InfoHandler serves the public platform statistics
type InfoHandler struct {
	infoUC usecase.InfoUsecase
	logger *slog.Logger
}

// NewInfoHandler is the constructor for InfoHandler
func NewInfoHandler(params InfoHandlerParams) *InfoHandler {
	return &InfoHandler{
		infoUC: params.InfoUC,
		logger: params.Logger,
	}
}

// BaseInfoResponse carries the platform-wide aggregate statistics
type BaseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

// BaseInfo handles the public statistics endpoint
func (h *InfoHandler) BaseInfo(c echo.Context) error {
	info, err := h.infoUC.BaseInfo(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, BaseInfoResponse{
		ReviewCount:          info.ReviewCount,
		AverageRating:        info.AverageRating,
		BusinessProfileCount: info.BusinessProfileCount,
		OfferCount:           info.OfferCount,
	})
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
