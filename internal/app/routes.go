package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyomei/core/internal/middleware"
	"github.com/kyomei/core/internal/modules/admin"
	"github.com/kyomei/core/internal/modules/answer"
	"github.com/kyomei/core/internal/modules/like"
	"github.com/kyomei/core/internal/modules/ranking"
	"github.com/kyomei/core/internal/modules/topic"
	"github.com/kyomei/core/internal/modules/user"
	"github.com/kyomei/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	authMW := middleware.Auth(db)
	adminMW := middleware.RequireAdmin(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Round(time.Second).String(),
		})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(a.rc.Raw()))

	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
	topic.NewHandler(topic.NewService(db, a.logger)).RegisterRoutes(api, authMW, adminMW)
	answer.NewHandler(answer.NewService(db)).RegisterRoutes(api, authMW)
	like.NewHandler(like.NewService(db)).RegisterRoutes(api, authMW, adminMW)
	ranking.NewHandler(ranking.NewService(db, a.rc)).RegisterRoutes(api)
	admin.NewHandler(admin.NewService(db)).RegisterRoutes(api, adminMW)
}
