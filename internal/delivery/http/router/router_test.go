package router

import (
	"testing"

	"quill/config"
	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func registeredPaths(e *echo.Echo) map[string]bool {
	paths := make(map[string]bool)
	for _, route := range e.Routes() {
		paths[route.Method+" "+route.Path] = true
	}

	return paths
}

func newRouterForMode(mode string, accountHandler *handler.AccountHandler) *echo.Echo {
	e := echo.New()
	r := NewRouter(RouterParams{
		Config:         &config.Config{Auth: &config.AuthConfig{Mode: mode}},
		AccountHandler: accountHandler,
		UserHandler:    &handler.UserHandler{},
		PostHandler:    &handler.PostHandler{},
		AuthMiddleware: &middleware.AuthMiddleware{},
	})
	r.RegisterRoutes(e)

	return e
}

func TestRegisterRoutes_LocalMode(t *testing.T) {
	paths := registeredPaths(newRouterForMode(config.AuthModeLocal, nil))

	assert.True(t, paths["POST /register"])
	assert.True(t, paths["POST /login"])
	assert.False(t, paths["POST /signup"])
	assert.False(t, paths["POST /signin"])
}

func TestRegisterRoutes_CognitoMode(t *testing.T) {
	paths := registeredPaths(newRouterForMode(config.AuthModeCognito, &handler.AccountHandler{}))

	assert.True(t, paths["POST /signup"])
	assert.True(t, paths["POST /signin"])
	assert.True(t, paths["POST /login"])
	assert.False(t, paths["POST /register"])
}

func TestRegisterRoutes_SharedResources(t *testing.T) {
	for _, mode := range []string{config.AuthModeLocal, config.AuthModeCognito} {
		paths := registeredPaths(newRouterForMode(mode, &handler.AccountHandler{}))

		assert.True(t, paths["GET /health"], mode)
		assert.True(t, paths["GET /users"], mode)
		assert.True(t, paths["GET /users/:id"], mode)
		assert.True(t, paths["PUT /users/:id"], mode)
		assert.True(t, paths["DELETE /users/:id"], mode)
		assert.True(t, paths["POST /posts"], mode)
		assert.True(t, paths["GET /posts"], mode)
		assert.True(t, paths["GET /posts/:id"], mode)
		assert.True(t, paths["DELETE /posts/:id"], mode)
		assert.True(t, paths["GET /me"], mode)
	}
}
