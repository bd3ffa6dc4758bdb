package services

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"minestake-backend/internal/models"
)

var ErrGameNotFound = errors.New("game not found")

// GameEngine runs one game at a time. Starting a game discards the previous
// controller; reveals against a discarded game fail with ErrGameNotFound.
type GameEngine struct {
	mu          sync.Mutex
	generator   *GridGenerator
	scores      *ScoreTracker
	leaderboard *LeaderboardStore
	broadcaster Broadcaster
	defaults    models.GameParams
	current     *BoardController
	log         logrus.FieldLogger
}

func NewGameEngine(generator *GridGenerator, scores *ScoreTracker, leaderboard *LeaderboardStore, defaults models.GameParams, log logrus.FieldLogger) *GameEngine {
	return &GameEngine{
		generator:   generator,
		scores:      scores,
		leaderboard: leaderboard,
		broadcaster: noopBroadcaster{},
		defaults:    defaults,
		log:         log,
	}
}

func (ge *GameEngine) SetBroadcaster(b Broadcaster) {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	if b == nil {
		b = noopBroadcaster{}
	}
	ge.broadcaster = b
}

// NewGame generates a board and makes it the current game. Zero params use
// the configured defaults.
func (ge *GameEngine) NewGame(params models.GameParams) (models.GameState, error) {
	if params.IsZero() {
		params = ge.defaults
	}

	board, err := ge.generator.Generate(params)
	if err != nil {
		return models.GameState{}, err
	}
	controller := NewBoardController(models.GenerateGameID(), board)

	ge.mu.Lock()
	defer ge.mu.Unlock()

	ge.current = controller
	ge.scores.Reset()

	ge.log.WithFields(logrus.Fields{
		"game_id":   controller.ID(),
		"rows":      params.Rows,
		"cols":      params.Cols,
		"penalties": params.Penalties,
	}).Info("Game started")

	return controller.State(), nil
}

func (ge *GameEngine) Reveal(gameID string, row, col int) (models.RevealResult, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	if ge.current == nil || ge.current.ID() != gameID {
		return models.RevealResult{}, ErrGameNotFound
	}

	result, err := ge.current.Reveal(row, col)
	if err != nil {
		return models.RevealResult{}, err
	}
	if !result.Delta.Changed {
		return result, nil
	}

	ge.broadcaster.BroadcastReveal(result)

	if !result.Delta.Terminal() {
		ge.scores.Track(result.Score)
		return result, nil
	}

	ge.finish(ge.current.State())
	return result, nil
}

// finish runs once per game, on the reveal that ended it.
func (ge *GameEngine) finish(state models.GameState) {
	ge.scores.Finish(state.Score)
	high := ge.scores.HighScore()

	ge.log.WithFields(logrus.Fields{
		"game_id":        state.ID,
		"status":         state.Status,
		"score":          state.Score,
		"new_high_score": high.IsNewHighScore,
	}).Info("Game over")

	ge.broadcaster.BroadcastGameOver(state.Summary(high))

	if ge.leaderboard.Record(state.Score) {
		ge.broadcaster.BroadcastLeaderboard(ge.leaderboard.Entries())
	}
}

func (ge *GameEngine) CurrentGame() (models.GameState, bool) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	if ge.current == nil {
		return models.GameState{}, false
	}
	return ge.current.State(), true
}

// Game returns the current game if its id matches.
func (ge *GameEngine) Game(gameID string) (models.GameState, error) {
	state, ok := ge.CurrentGame()
	if !ok || state.ID != gameID {
		return models.GameState{}, ErrGameNotFound
	}
	return state, nil
}

func (ge *GameEngine) HighScore() models.HighScore {
	return ge.scores.HighScore()
}

func (ge *GameEngine) Leaderboard() []models.ScoreEntry {
	return ge.leaderboard.Entries()
}

func (ge *GameEngine) LeaderboardLimit() int {
	return ge.leaderboard.Limit()
}
