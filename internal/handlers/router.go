package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minestake-backend/internal/middleware"
	"minestake-backend/internal/services"
)

func NewRouter(gameHandler *GameHandler, wsHandler *WebSocketHandler, jwtService *services.JWTService, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/ws", wsHandler.HandleWebSocket)
		api.GET("/scores/high", gameHandler.GetHighScore)
		api.GET("/leaderboard", gameHandler.GetLeaderboard)

		games := api.Group("/games")
		{
			games.POST("", gameHandler.NewGame)

			session := games.Group("")
			session.Use(middleware.GameTokenMiddleware(jwtService))
			{
				session.GET("/current", gameHandler.GetCurrentGame)
				session.POST("/reveal", gameHandler.Reveal)
			}
		}
	}

	return router
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("Request handled")
	}
}
