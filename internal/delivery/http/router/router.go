// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"quill/config"
	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AccountHandler *handler.AccountHandler `optional:"true"`
	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	accountHandler *handler.AccountHandler
	userHandler    *handler.UserHandler
	postHandler    *handler.PostHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		accountHandler: params.AccountHandler,
		userHandler:    params.UserHandler,
		postHandler:    params.PostHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The credential routes depend on the configured auth mode: the provider mode
// exposes the OTP-gated signup flow, the local mode exposes password
// registration. Both modes share the user and post resources.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	if r.cfg.Auth.Mode == config.AuthModeCognito && r.accountHandler != nil {
		e.POST("/signup", r.accountHandler.SignUp)
		e.POST("/signin", r.accountHandler.SignIn)
		e.POST("/login", r.accountHandler.Login)
	} else {
		e.POST("/register", r.userHandler.Register)
		e.POST("/login", r.userHandler.Login)
	}

	// User administration routes
	userGroup := e.Group("/users")
	{
		userGroup.GET("", r.userHandler.List)
		userGroup.GET("/:id", r.userHandler.Get)
		userGroup.PUT("/:id", r.userHandler.Update)
		userGroup.DELETE("/:id", r.userHandler.Delete)
	}

	// Post routes
	postGroup := e.Group("/posts")
	{
		postGroup.POST("", r.postHandler.Create)
		postGroup.GET("", r.postHandler.List)
		postGroup.GET("/:id", r.postHandler.Get)
		postGroup.DELETE("/:id", r.postHandler.Delete)
	}

	// Profile route that requires authentication
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		meGroup.GET("", r.userHandler.Me)
	}
}
