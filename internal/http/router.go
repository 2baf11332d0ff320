package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/trisers/shopauth/internal/http/handlers"
	"github.com/trisers/shopauth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.CapabilityHandlers, dh *handlers.DashboardHandlers, authmw *middleware.AuthMW, capmw *middleware.CapabilityMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/login", ah.Login)
	auth.POST("/resend-confirmation", ah.ResendConfirmation)
	auth.POST("/request-confirmation", ah.RequestConfirmation)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.GET("/refresh-access-token", ah.RefreshAccessToken)
	auth.GET("/me", authmw.RequireAuth(), ah.Me)

	caps := r.Group("/capabilities").Use(authmw.RequireAuth(), middleware.RequireSuperAdmin())
	caps.POST("", ch.Create)
	caps.GET("", ch.List)
	caps.GET("/:id", ch.Get)
	caps.PUT("/:id", ch.Update)
	caps.DELETE("/:id", ch.Delete)

	// Dashboard routes authorize against the capability catalog; the
	// invite endpoint is additionally superadmin-only.
	dash := r.Group("/dashboard").Use(authmw.RequireAuth(), capmw.Require())
	dash.POST("/users", middleware.RequireSuperAdmin(), dh.Invite)

	return r
}
