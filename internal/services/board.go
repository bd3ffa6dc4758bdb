package services

import (
	"sync"
	"time"

	"minestake-backend/internal/models"
)

// NewGameState wraps a freshly generated board in an active game.
func NewGameState(id string, board models.Board, now time.Time) models.GameState {
	return models.GameState{
		ID:        id,
		Status:    models.GameStatusActive,
		Board:     board,
		StartedAt: now,
	}
}

// Reveal is the game's transition function. It never mutates state: the
// returned value shares every row except the one that changed.
//
// Revealing an already revealed cell, or any cell after the game ended, is a
// no-op that returns the input state and an empty delta.
func Reveal(state models.GameState, at models.Coord, now time.Time) (models.GameState, models.RevealDelta, error) {
	board := state.Board
	if !board.InBounds(at.Row, at.Col) {
		return state, models.RevealDelta{}, models.InvalidMoveError{
			Row: at.Row, Col: at.Col, Rows: board.Rows, Cols: board.Cols,
		}
	}

	if state.Status != models.GameStatusActive {
		return state, models.RevealDelta{}, nil
	}
	cell := board.Cell(at.Row, at.Col)
	if cell.Revealed {
		return state, models.RevealDelta{}, nil
	}

	row := make([]models.Cell, len(board.Cells[at.Row]))
	copy(row, board.Cells[at.Row])
	row[at.Col].Revealed = true

	cells := make([][]models.Cell, len(board.Cells))
	copy(cells, board.Cells)
	cells[at.Row] = row

	next := state
	next.Board.Cells = cells
	delta := models.RevealDelta{Changed: true, Coord: at, Kind: cell.Kind}

	switch cell.Kind {
	case models.CellPenalty:
		next.Status = models.GameStatusLost
		next.EndedAt = now
		delta.Outcome = models.GameStatusLost
	default:
		next.Score++
		next.RevealedRewards++
		delta.ScoreGained = 1
		if next.RevealedRewards == board.RewardCount() {
			next.Status = models.GameStatusWon
			next.EndedAt = now
			delta.Outcome = models.GameStatusWon
		}
	}

	return next, delta, nil
}

// BoardController owns the state of one game. Restarting means building a
// new controller; a controller never goes back to active.
type BoardController struct {
	id    string
	mu    sync.Mutex
	state models.GameState
	now   func() time.Time
}

func NewBoardController(id string, board models.Board) *BoardController {
	return &BoardController{
		id:    id,
		state: NewGameState(id, board, time.Now()),
		now:   time.Now,
	}
}

func (bc *BoardController) ID() string {
	return bc.id
}

func (bc *BoardController) State() models.GameState {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.state
}

func (bc *BoardController) Reveal(row, col int) (models.RevealResult, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	next, delta, err := Reveal(bc.state, models.Coord{Row: row, Col: col}, bc.now())
	if err != nil {
		return models.RevealResult{}, err
	}
	bc.state = next

	return models.RevealResult{
		GameID:      next.ID,
		State:       next.Status,
		Score:       next.Score,
		TotalReward: next.TotalReward(),
		Delta:       delta,
	}, nil
}
