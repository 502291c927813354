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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse is the full order view with the snapshotted tier fields
type OrderResponse struct {
	ID                    string          `json:"id"`
	CustomerUser          string          `json:"customer_user"`
	BusinessUser          string          `json:"business_user"`
	Title                 string          `json:"title"`
	Revisions             int             `json:"revisions"`
	DeliveryTimeInDays    int             `json:"delivery_time_in_days"`
	Price                 decimal.Decimal `json:"price"`
	Features              []string        `json:"features"`
	OfferType             string          `json:"offer_type"`
	Status                string          `json:"status"`
	CreatedAt             string          `json:"created_at"`
	UpdatedAt             string          `json:"updated_at"`
	EstimatedDeliveryDate string          `json:"estimated_delivery_date"`
}

// CreateOrder handles placing a new order for a pricing tier
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), actorID, req.OfferDetailID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order))
}

// ListOrders handles listing the caller's orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), actorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return response.Success(c, http.StatusOK, out)
}

// GetOrder handles retrieving a single order
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actorID, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// UpdateOrderStatus handles a status change by the business counterparty
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), actorID, id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// DeleteOrder handles removing an order, staff only
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), actorID, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CountInProgress handles counting a business account's running orders
func (h *OrderHandler) CountInProgress(c echo.Context) error {
	businessUserID, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid business user ID")
	}

	count, err := h.orderUC.CountInProgress(c.Request().Context(), businessUserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"order_count": count})
}

// CountCompleted handles counting a business account's completed orders
func (h *OrderHandler) CountCompleted(c echo.Context) error {
	businessUserID, err := uuid.Parse(c.Param("business_user_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid business user ID")
	}

	count, err := h.orderUC.CountCompleted(c.Request().Context(), businessUserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"completed_order_count": count})
}

func toOrderResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:                    order.ID.String(),
		CustomerUser:          order.CustomerUserID.String(),
		BusinessUser:          order.BusinessUserID.String(),
		Title:                 order.Title,
		Revisions:             order.Revisions,
		DeliveryTimeInDays:    order.DeliveryTimeInDays,
		Price:                 order.Price,
		Features:              order.Features,
		OfferType:             order.OfferType,
		Status:                order.Status.String(),
		CreatedAt:             order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             order.UpdatedAt.Format(time.RFC3339),
		EstimatedDeliveryDate: order.EstimatedDeliveryDate().Format(time.RFC3339),
	}
}
