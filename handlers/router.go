package handlers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lsb-steganography/config"
)

// NewRouter builds the gin engine serving the steganography API.
func NewRouter(cfg *config.Config, stegoHandler *StegoHandler, logger *zap.Logger) (*gin.Engine, error) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Capacity", "X-Stego-Usage", "X-Stego-Changed", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cors settings: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors.New(corsConfig))

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/embed", stegoHandler.EmbedMessage)
			stego.POST("/extract", stegoHandler.ExtractMessage)
			stego.POST("/capacity", stegoHandler.Capacity)
		}
	}

	return router, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}
