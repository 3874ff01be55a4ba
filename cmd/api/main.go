package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NavalhaLabs/barber-manager/internal/config"
	dbpkg "github.com/NavalhaLabs/barber-manager/internal/db"
	"github.com/NavalhaLabs/barber-manager/internal/logger"
	"github.com/NavalhaLabs/barber-manager/internal/routes"
)

func main() {

	logger.Init()
	defer logger.L().Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logger.L().Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
