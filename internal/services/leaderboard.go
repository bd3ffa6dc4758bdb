package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"minestake-backend/internal/models"
)

// LeaderboardStore keeps the best completed games, highest score first.
// It is the only writer of its key: every update happens under its lock and
// is queued on the Persister in the same order.
type LeaderboardStore struct {
	mu         sync.Mutex
	key        string
	limit      int
	dateLayout string
	writer     *Persister
	log        logrus.FieldLogger
	entries    []models.ScoreEntry
	now        func() time.Time
}

type LeaderboardOptions struct {
	Key        string
	Limit      int
	DateLayout string
}

// NewLeaderboardStore loads the stored leaderboard. Missing or unparsable
// data starts an empty one.
func NewLeaderboardStore(ctx context.Context, store KeyValueStore, writer *Persister, opts LeaderboardOptions, log logrus.FieldLogger) *LeaderboardStore {
	if opts.DateLayout == "" {
		opts.DateLayout = time.DateOnly
	}

	ls := &LeaderboardStore{
		key:        opts.Key,
		limit:      opts.Limit,
		dateLayout: opts.DateLayout,
		writer:     writer,
		log:        log,
		entries:    []models.ScoreEntry{},
		now:        time.Now,
	}

	raw, ok, err := store.Get(ctx, opts.Key)
	if err != nil {
		log.WithFields(logrus.Fields{"key": opts.Key, "error": err}).Error("Failed to load leaderboard")
		return ls
	}
	if !ok {
		return ls
	}

	var entries []models.ScoreEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.WithFields(logrus.Fields{"key": opts.Key, "error": err}).Warn("Ignoring corrupt leaderboard")
		return ls
	}
	ls.entries = ls.rank(entries)

	return ls
}

// Record adds a completed game. Zero scores are never listed.
func (ls *LeaderboardStore) Record(score int) bool {
	if score <= 0 {
		return false
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	entry := models.ScoreEntry{Score: score, Date: ls.now().Format(ls.dateLayout)}
	updated := make([]models.ScoreEntry, len(ls.entries), len(ls.entries)+1)
	copy(updated, ls.entries)
	updated = ls.rank(append(updated, entry))

	data, err := json.Marshal(updated)
	if err != nil {
		ls.log.WithError(err).Error("Failed to encode leaderboard")
		return false
	}

	ls.writer.Enqueue(ls.key, string(data))
	ls.entries = updated

	return true
}

func (ls *LeaderboardStore) Entries() []models.ScoreEntry {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := make([]models.ScoreEntry, len(ls.entries))
	copy(out, ls.entries)
	return out
}

func (ls *LeaderboardStore) Limit() int {
	return ls.limit
}

// rank sorts descending by score, keeping insertion order for ties, and cuts
// the list to the configured size.
func (ls *LeaderboardStore) rank(entries []models.ScoreEntry) []models.ScoreEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > ls.limit {
		entries = entries[:ls.limit]
	}
	return entries
}
