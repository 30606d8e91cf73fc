// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"rater/internal/delivery/http/middleware"
	"rater/internal/delivery/http/router/handler"
	"rater/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	SessionHandler *handler.SessionHandler
	ProfileHandler *handler.ProfileHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	sessionHandler *handler.SessionHandler
	profileHandler *handler.ProfileHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		sessionHandler: params.SessionHandler,
		profileHandler: params.ProfileHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session resolution. The bearer token is optional here: an absent or
	// invalid token resolves to an anonymous session rather than a 401.
	e.GET("/session", r.sessionHandler.Resolve)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/signout", r.authHandler.SignOut)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
	}

	// Routes for any authenticated user
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/profile", r.profileHandler.GetProfile)
		userGroup.PUT("/profile", r.profileHandler.UpdateProfile)
		userGroup.PUT("/password", r.authHandler.ChangePassword)
		userGroup.GET("/stores", r.storeHandler.ListStores)
		userGroup.GET("/stores/:id", r.storeHandler.GetStore)
		userGroup.POST("/stores/:id/rating", r.ratingHandler.RateStore)
		userGroup.GET("/stores/:id/rating", r.ratingHandler.GetOwnRating)
	}

	// Store owner routes that require authentication and the store_owner role
	ownerGroup := e.Group("/owner")
	ownerGroup.Use(r.authMiddleware.Authenticate)                        // First, check if logged in
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleStoreOwner)) // Then, check for the role
	{
		ownerGroup.GET("/stores", r.storeHandler.ListOwnStores)
		ownerGroup.GET("/stores/:id/ratings", r.ratingHandler.ListStoreRatings)
	}

	// Administration routes that require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/users", r.adminHandler.CreateUser)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/role", r.adminHandler.AssignRole)
		adminGroup.POST("/stores", r.adminHandler.CreateStore)
		adminGroup.PUT("/stores/:id", r.adminHandler.UpdateStore)
		adminGroup.DELETE("/stores/:id", r.adminHandler.DeleteStore)
	}
}
