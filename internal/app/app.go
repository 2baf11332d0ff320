package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/internal/config"
	httpx "github.com/trisers/shopauth/internal/http"
	"github.com/trisers/shopauth/internal/http/handlers"
	"github.com/trisers/shopauth/internal/http/middleware"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.AccountRepo, logger)
	capH := handlers.NewCapabilityHandlers(container.CapabilitySvc, logger)
	dashH := handlers.NewDashboardHandlers(container.AuthSvc, logger)

	authMW := middleware.NewAuthMW(container.TokenSvc)
	capMW := middleware.NewCapabilityMW(container.CapabilitySvc, logger)

	r := httpx.BuildRouter(authH, capH, dashH, authMW, capMW)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
