package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OfferHandlerParams holds dependencies for OfferHandler, injected by Fx.
type OfferHandlerParams struct {
	fx.In

	OfferUC usecase.OfferUsecase
	Logger  *slog.Logger
}

// OfferHandler holds dependencies for offer-related handlers
type OfferHandler struct {
	offerUC usecase.OfferUsecase
	logger  *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler
func NewOfferHandler(params OfferHandlerParams) *OfferHandler {
	return &OfferHandler{
		offerUC: params.OfferUC,
		logger:  params.Logger,
	}
}

// OfferDetailRequest represents one pricing tier in an offer creation request
type OfferDetailRequest struct {
	Title              string          `json:"title" validate:"required"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

// CreateOfferRequest represents the request body for publishing an offer
type CreateOfferRequest struct {
	Title       string               `json:"title" validate:"required"`
	Image       string               `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailRequest `json:"details" validate:"dive"`
}

// OfferDetailPatchRequest represents a partial update of one existing tier,
// matched by its ID
type OfferDetailPatchRequest struct {
	ID                 uuid.UUID        `json:"id" validate:"required"`
	Title              *string          `json:"title"`
	Revisions          *int             `json:"revisions"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days"`
	Price              *decimal.Decimal `json:"price"`
	Features           []string         `json:"features"`
	OfferType          *string          `json:"offer_type"`
}

// UpdateOfferRequest represents the request body for a partial offer update
type UpdateOfferRequest struct {
	Title       *string                   `json:"title"`
	Image       *string                   `json:"image"`
	Description *string                   `json:"description"`
	Details     []OfferDetailPatchRequest `json:"details" validate:"dive"`
}

// OfferDetailResponse is the full view of one pricing tier
type OfferDetailResponse struct {
	ID                 string          `json:"id"`
	OfferID            string          `json:"offer_id"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

// OfferDetailLink points at a tier without embedding it, as rendered in
// the offer list
type OfferDetailLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// OfferCreatorDetails is the abbreviated creator view on list items
type OfferCreatorDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferResponse is the full offer view with nested tiers
type OfferResponse struct {
	ID              string                `json:"id"`
	User            string                `json:"user"`
	Title           string                `json:"title"`
	Image           string                `json:"image"`
	Description     string                `json:"description"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
	Details         []OfferDetailResponse `json:"details"`
	MinPrice        *decimal.Decimal      `json:"min_price"`
	MinDeliveryTime *int                  `json:"min_delivery_time"`
	UserDetails     *OfferCreatorDetails  `json:"user_details,omitempty"`
}

// OfferListItem is one row of the public catalog, with tiers as links
type OfferListItem struct {
	ID              string               `json:"id"`
	User            string               `json:"user"`
	Title           string               `json:"title"`
	Image           string               `json:"image"`
	Description     string               `json:"description"`
	CreatedAt       string               `json:"created_at"`
	UpdatedAt       string               `json:"updated_at"`
	Details         []OfferDetailLink    `json:"details"`
	MinPrice        *decimal.Decimal     `json:"min_price"`
	MinDeliveryTime *int                 `json:"min_delivery_time"`
	UserDetails     *OfferCreatorDetails `json:"user_details"`
}

// OfferPageResponse is one page of the catalog plus pagination metadata
type OfferPageResponse struct {
	Count    int64           `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Results  []OfferListItem `json:"results"`
}

// CreateOffer handles publishing a new offer with its tiers
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	input := usecase.CreateOfferInput{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Details:     make([]usecase.OfferDetailInput, 0, len(req.Details)),
	}
	for _, d := range req.Details {
		input.Details = append(input.Details, usecase.OfferDetailInput{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          d.OfferType,
		})
	}

	offer, err := h.offerUC.CreateOffer(c.Request().Context(), actorID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toOfferResponse(offer, nil))
}

// ListOffers handles the public catalog with filters and pagination
func (h *OfferHandler) ListOffers(c echo.Context) error {
	input, err := parseListOffersQuery(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.offerUC.ListOffers(c.Request().Context(), *input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items := make([]OfferListItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toOfferListItem(item))
	}

	return response.Success(c, http.StatusOK, OfferPageResponse{
		Count:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Results:  items,
	})
}

// GetOffer handles retrieving a single offer with nested tiers
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid offer ID")
	}

	item, err := h.offerUC.GetOffer(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(item.Offer, item.Creator))
}

// UpdateOffer handles a partial offer update by the owner
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid offer ID")
	}

	var req UpdateOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	input := usecase.UpdateOfferInput{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Details:     make([]usecase.OfferDetailPatch, 0, len(req.Details)),
	}
	for _, d := range req.Details {
		input.Details = append(input.Details, usecase.OfferDetailPatch{
			ID:                 d.ID,
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          d.OfferType,
		})
	}

	offer, err := h.offerUC.UpdateOffer(c.Request().Context(), actorID, id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, nil))
}

// DeleteOffer handles removing an offer and its tiers
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid offer ID")
	}

	if err := h.offerUC.DeleteOffer(c.Request().Context(), actorID, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOfferDetail handles retrieving a single pricing tier
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid offer detail ID")
	}

	detail, err := h.offerUC.GetOfferDetail(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOfferDetailResponse(detail))
}

func parseListOffersQuery(c echo.Context) (*usecase.ListOffersInput, error) {
	input := &usecase.ListOffersInput{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}

	if v := c.QueryParam("creator_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid creator_id")
		}
		input.CreatorID = &id
	}

	if v := c.QueryParam("min_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid min_price")
		}
		input.MinPrice = &price
	}

	if v := c.QueryParam("max_delivery_time"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid max_delivery_time")
		}
		input.MaxDeliveryTime = &days
	}

	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid page")
		}
		input.Page = page
	}

	if v := c.QueryParam("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid page_size")
		}
		input.PageSize = size
	}

	return input, nil
}

func toOfferDetailResponse(detail *entity.OfferDetail) OfferDetailResponse {
	return OfferDetailResponse{
		ID:                 detail.ID.String(),
		OfferID:            detail.OfferID.String(),
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
	}
}

func toOfferResponse(offer *entity.Offer, creator *entity.User) OfferResponse {
	details := make([]OfferDetailResponse, 0, len(offer.Details))
	for _, d := range offer.Details {
		details = append(details, toOfferDetailResponse(d))
	}

	resp := OfferResponse{
		ID:          offer.ID.String(),
		User:        offer.UserID.String(),
		Title:       offer.Title,
		Image:       offer.Image,
		Description: offer.Description,
		CreatedAt:   offer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   offer.UpdatedAt.Format(time.RFC3339),
		Details:     details,
		MinPrice:    offer.MinPrice(),
		UserDetails: toCreatorDetails(creator),
	}
	if days, ok := offer.MinDeliveryTime(); ok {
		resp.MinDeliveryTime = &days
	}

	return resp
}

func toOfferListItem(item *usecase.OfferWithCreator) OfferListItem {
	offer := item.Offer

	links := make([]OfferDetailLink, 0, len(offer.Details))
	for _, d := range offer.Details {
		links = append(links, OfferDetailLink{
			ID:  d.ID.String(),
			URL: "/api/offerdetails/" + d.ID.String() + "/",
		})
	}

	out := OfferListItem{
		ID:          offer.ID.String(),
		User:        offer.UserID.String(),
		Title:       offer.Title,
		Image:       offer.Image,
		Description: offer.Description,
		CreatedAt:   offer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   offer.UpdatedAt.Format(time.RFC3339),
		Details:     links,
		MinPrice:    offer.MinPrice(),
		UserDetails: toCreatorDetails(item.Creator),
	}
	if days, ok := offer.MinDeliveryTime(); ok {
		out.MinDeliveryTime = &days
	}

	return out
}

func toCreatorDetails(creator *entity.User) *OfferCreatorDetails {
	if creator == nil {
		return nil
	}

	return &OfferCreatorDetails{
		FirstName: creator.FirstName,
		LastName:  creator.LastName,
		Username:  creator.Username,
	}
}
