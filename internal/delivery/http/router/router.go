// Package router contains route registration for the HTTP delivery.
package router

import (
	"marketplace/config"
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	ProfileHandler     *handler.ProfileHandler
	OfferHandler       *handler.OfferHandler
	OrderHandler       *handler.OrderHandler
	ReviewHandler      *handler.ReviewHandler
	InfoHandler        *handler.InfoHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ThrottleMiddleware *middleware.ThrottleMiddleware
	Config             *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	profileHandler     *handler.ProfileHandler
	offerHandler       *handler.OfferHandler
	orderHandler       *handler.OrderHandler
	reviewHandler      *handler.ReviewHandler
	infoHandler        *handler.InfoHandler
	authMiddleware     *middleware.AuthMiddleware
	throttleMiddleware *middleware.ThrottleMiddleware
	config             *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		profileHandler:     params.ProfileHandler,
		offerHandler:       params.OfferHandler,
		orderHandler:       params.OrderHandler,
		reviewHandler:      params.ReviewHandler,
		infoHandler:        params.InfoHandler,
		authMiddleware:     params.AuthMiddleware,
		throttleMiddleware: params.ThrottleMiddleware,
		config:             params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authenticate := r.authMiddleware.Authenticate
	requireBusiness := r.authMiddleware.RequireRole(entity.RoleBusiness.String())
	requireCustomer := r.authMiddleware.RequireRole(entity.RoleCustomer.String())

	api := e.Group("/api")

	// Public account endpoints
	api.POST("/registration", r.authHandler.Register)
	api.POST("/login", r.authHandler.Login)

	// Profile endpoints
	api.GET("/profile/:id", r.profileHandler.GetProfile, authenticate)
	api.PATCH("/profile/:id", r.profileHandler.UpdateProfile, authenticate)
	api.GET("/profiles/business", r.profileHandler.ListBusinessProfiles, authenticate)
	api.GET("/profiles/customer", r.profileHandler.ListCustomerProfiles, authenticate)

	// Offer catalog; the list and single views are public
	api.POST("/offers", r.offerHandler.CreateOffer, authenticate, requireBusiness)
	api.GET("/offers", r.offerHandler.ListOffers)
	api.GET("/offers/:id", r.offerHandler.GetOffer)
	api.PATCH("/offers/:id", r.offerHandler.UpdateOffer, authenticate)
	api.DELETE("/offers/:id", r.offerHandler.DeleteOffer, authenticate)
	api.GET("/offerdetails/:id", r.offerHandler.GetOfferDetail, authenticate)

	// Order ledger
	api.POST("/orders", r.orderHandler.CreateOrder, authenticate, requireCustomer)
	api.GET("/orders", r.orderHandler.ListOrders, authenticate)
	api.GET("/orders/:id", r.orderHandler.GetOrder, authenticate)
	api.PATCH("/orders/:id", r.orderHandler.UpdateOrderStatus, authenticate)
	api.DELETE("/orders/:id", r.orderHandler.DeleteOrder, authenticate)
	api.GET("/order-count/:business_user_id", r.orderHandler.CountInProgress, authenticate)
	api.GET("/completed-order-count/:business_user_id", r.orderHandler.CountCompleted, authenticate)

	// Review ledger, throttled per caller
	throttle := r.throttleMiddleware.Limit
	api.POST("/reviews", r.reviewHandler.CreateReview, authenticate, requireCustomer, throttle)
	api.GET("/reviews", r.reviewHandler.ListReviews, authenticate, throttle)
	api.GET("/reviews/:id", r.reviewHandler.GetReview, authenticate, throttle)
	api.PATCH("/reviews/:id", r.reviewHandler.UpdateReview, authenticate, throttle)
	api.DELETE("/reviews/:id", r.reviewHandler.DeleteReview, authenticate, throttle)

	// Public platform statistics
	api.GET("/base-info", r.infoHandler.BaseInfo)
}
