package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharpcut-app/booking-api/internal/config"
	dbpkg "github.com/sharpcut-app/booking-api/internal/db"
	"github.com/sharpcut-app/booking-api/internal/logger"
	"github.com/sharpcut-app/booking-api/internal/middleware"
	redispkg "github.com/sharpcut-app/booking-api/internal/redis"
	"github.com/sharpcut-app/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := redispkg.NewClient(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
