package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mmark/internal/metrics"
	"github.com/xxxsen/mmark/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Bookmarks     *BookmarkHandler
	Health        *HealthHandler
	Authenticator middleware.Authenticator
	Metrics       *metrics.Metrics
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/signup", deps.Auth.Signup)
	api.POST("/auth/signin", deps.Auth.Signin)

	if deps.Health != nil {
		api.GET("/healthz", deps.Health.Liveness)
		api.GET("/readyz", deps.Health.Readiness)
	}
	if deps.Metrics != nil {
		api.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.Authenticator))

	authGroup.GET("/users/me", deps.Users.Me)
	authGroup.PATCH("/users", deps.Users.EditProfile)
	authGroup.GET("/user/me", deps.Users.Me)
	authGroup.PATCH("/user/update-profile", deps.Users.EditProfile)

	for _, prefix := range []string{"/bookmarks", "/bookmark"} {
		authGroup.GET(prefix, deps.Bookmarks.List)
		authGroup.POST(prefix, deps.Bookmarks.Create)
		authGroup.GET(prefix+"/:id", deps.Bookmarks.Get)
		authGroup.PATCH(prefix+"/:id", deps.Bookmarks.Update)
		authGroup.DELETE(prefix+"/:id", deps.Bookmarks.Delete)
	}
}
