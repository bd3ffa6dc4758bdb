package services

import "minestake-backend/internal/models"

// Broadcaster receives game events. Implementations must not block.
type Broadcaster interface {
	BroadcastReveal(result models.RevealResult)
	BroadcastGameOver(summary models.GameSummary)
	BroadcastLeaderboard(entries []models.ScoreEntry)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastReveal(models.RevealResult) {}
func (noopBroadcaster) BroadcastGameOver(models.GameSummary) {}
func (noopBroadcaster) BroadcastLeaderboard([]models.ScoreEntry) {}
