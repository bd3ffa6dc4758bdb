package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"minestake-backend/internal/middleware"
	"minestake-backend/internal/models"
	"minestake-backend/internal/services"
)

type GameHandler struct {
	gameEngine *services.GameEngine
	jwtService *services.JWTService
	log        logrus.FieldLogger
}

func NewGameHandler(gameEngine *services.GameEngine, jwtService *services.JWTService, log logrus.FieldLogger) *GameHandler {
	return &GameHandler{
		gameEngine: gameEngine,
		jwtService: jwtService,
		log:        log,
	}
}

func (h *GameHandler) NewGame(c *gin.Context) {
	var req models.NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	state, err := h.gameEngine.NewGame(req.Params())
	if err != nil {
		h.respondError(c, "Failed to start game", err)
		return
	}

	token, err := h.jwtService.GenerateToken(state.ID)
	if err != nil {
		h.log.WithError(err).Error("Failed to issue game token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue game token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    state.View(),
		"token":   token,
	})
}

func (h *GameHandler) Reveal(c *gin.Context) {
	gameID := c.GetString(middleware.GameIDKey)

	var req models.RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.gameEngine.Reveal(gameID, *req.Row, *req.Col)
	if err != nil {
		h.respondError(c, "Failed to reveal cell", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetCurrentGame(c *gin.Context) {
	state, err := h.gameEngine.Game(c.GetString(middleware.GameIDKey))
	if err != nil {
		h.respondError(c, "Failed to get game", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    state.View(),
	})
}

func (h *GameHandler) GetHighScore(c *gin.Context) {
	high := h.gameEngine.HighScore()

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"high_score":        high.HighScore,
		"is_new_high_score": high.IsNewHighScore,
	})
}

func (h *GameHandler) GetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": h.gameEngine.Leaderboard(),
		"limit":   h.gameEngine.LeaderboardLimit(),
	})
}

func (h *GameHandler) respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidBoardParams), errors.Is(err, models.ErrOutOfBounds):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrGameNotFound):
		status = http.StatusNotFound
	default:
		h.log.WithError(err).Error(message)
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
