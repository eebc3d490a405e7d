package app

import (
	"time"

	"github.com/drink365/estate-tax-app/internal/middleware"
	"github.com/drink365/estate-tax-app/internal/modules/auth"
	"github.com/drink365/estate-tax-app/internal/modules/estate"
	"github.com/drink365/estate-tax-app/internal/modules/gift"
	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router
	guard := middleware.Guard(a.reg, a.logger)
	optionalGuard := middleware.OptionalGuard(a.reg)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Round(time.Second).String(),
		})
	})

	var loginMW []gin.HandlerFunc
	if a.rc != nil {
		loginMW = append(loginMW, middleware.LoginRateLimit(a.rc.Raw()))
	}
	authSvc := auth.NewService(a.db, a.reg, a.logger)
	auth.NewHandler(authSvc).RegisterRoutes(api, optionalGuard, loginMW...)

	estate.NewHandler().RegisterRoutes(api, guard)
	gift.NewHandler().RegisterRoutes(api, guard)

	api.GET("/jobs", guard, func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
}

var processStart = time.Now()
