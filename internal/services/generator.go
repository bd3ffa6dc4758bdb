package services

import (
	"math/rand"
	"sync"
	"time"

	"minestake-backend/internal/models"
)

// GridGenerator places penalties uniformly at random. It is safe for
// concurrent use.
type GridGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGridGenerator seeds the generator. A zero seed uses the current time.
func NewGridGenerator(seed int64) *GridGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GridGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns an unrevealed board with exactly params.Penalties penalty
// cells. Positions come from a partial Fisher-Yates shuffle of the linear
// cell indices, so the cost is linear in the board size.
func (g *GridGenerator) Generate(params models.GameParams) (models.Board, error) {
	if err := params.Validate(); err != nil {
		return models.Board{}, err
	}

	total := params.Rows * params.Cols
	positions := make([]int, total)
	for i := range positions {
		positions[i] = i
	}

	g.mu.Lock()
	for i := 0; i < params.Penalties; i++ {
		j := i + g.rng.Intn(total-i)
		positions[i], positions[j] = positions[j], positions[i]
	}
	g.mu.Unlock()

	cells := make([][]models.Cell, params.Rows)
	for r := range cells {
		cells[r] = make([]models.Cell, params.Cols)
		for c := range cells[r] {
			cells[r][c] = models.Cell{Kind: models.CellReward}
		}
	}
	for _, pos := range positions[:params.Penalties] {
		cells[pos/params.Cols][pos%params.Cols].Kind = models.CellPenalty
	}

	return models.Board{
		Rows:      params.Rows,
		Cols:      params.Cols,
		Penalties: params.Penalties,
		Cells:     cells,
	}, nil
}
