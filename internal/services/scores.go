package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"minestake-backend/internal/models"
)

// ScoreTracker mirrors the running game's score and owns the persisted high
// score. The high score only ever grows.
type ScoreTracker struct {
	mu           sync.Mutex
	key          string
	writer       *Persister
	log          logrus.FieldLogger
	currentScore int
	highScore    int
	isNewHigh    bool
}

// NewScoreTracker loads the stored high score. A missing, unreadable or
// corrupt value starts the session at zero.
func NewScoreTracker(ctx context.Context, store KeyValueStore, writer *Persister, key string, log logrus.FieldLogger) *ScoreTracker {
	t := &ScoreTracker{
		key:    key,
		writer: writer,
		log:    log,
	}

	raw, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		log.WithFields(logrus.Fields{"key": key, "error": err}).Error("Failed to load high score")
	case !ok:
	default:
		score, err := strconv.Atoi(raw)
		if err != nil || score < 0 {
			log.WithFields(logrus.Fields{"key": key, "value": raw}).Warn("Ignoring corrupt high score")
			break
		}
		t.highScore = score
	}

	return t
}

// Reset starts tracking a new game.
func (t *ScoreTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentScore = 0
	t.isNewHigh = false
}

func (t *ScoreTracker) Track(score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentScore = score
}

// Finish records a final score and reports whether it set a new high score.
// Only a strictly greater score is written.
func (t *ScoreTracker) Finish(score int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.currentScore = score
	if score <= t.highScore {
		t.isNewHigh = false
		return false
	}

	t.highScore = score
	t.isNewHigh = true
	t.writer.Enqueue(t.key, strconv.Itoa(score))

	t.log.WithField("high_score", score).Info("New high score")
	return true
}

func (t *ScoreTracker) CurrentScore() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentScore
}

func (t *ScoreTracker) HighScore() models.HighScore {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.HighScore{HighScore: t.highScore, IsNewHighScore: t.isNewHigh}
}
