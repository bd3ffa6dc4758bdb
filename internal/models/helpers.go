package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidBoardParams = errors.New("invalid board parameters")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
)

type InvalidBoardParamsError struct {
	Rows      int
	Cols      int
	Penalties int
}

func (e InvalidBoardParamsError) Error() string {
	switch {
	case e.Rows <= 0:
		return fmt.Sprintf("cannot create a board with %d rows", e.Rows)
	case e.Cols <= 0:
		return fmt.Sprintf("cannot create a board with %d columns", e.Cols)
	case e.Penalties < 0:
		return fmt.Sprintf("cannot create a board with a negative penalty count: %d", e.Penalties)
	case e.Penalties >= e.Rows*e.Cols:
		return fmt.Sprintf("not enough space for %d penalties on a %dx%d board", e.Penalties, e.Rows, e.Cols)
	default:
		return "cannot create board: unknown error"
	}
}

func (e InvalidBoardParamsError) Unwrap() error {
	return ErrInvalidBoardParams
}

type InvalidMoveError struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

func (e InvalidMoveError) Error() string {
	return fmt.Sprintf("move out of range (%d, %d) on a %dx%d board", e.Row, e.Col, e.Rows, e.Cols)
}

func (e InvalidMoveError) Unwrap() error {
	return ErrOutOfBounds
}

func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 || p.Penalties < 0 || p.Penalties >= p.Rows*p.Cols {
		return InvalidBoardParamsError{Rows: p.Rows, Cols: p.Cols, Penalties: p.Penalties}
	}
	return nil
}

func GenerateGameID() string {
	return uuid.New().String()
}

// View renders the state for the UI. Kinds of unrevealed cells stay hidden
// until the game is over.
func (s GameState) View() GameView {
	cells := make([][]CellView, s.Board.Rows)
	for r := range cells {
		cells[r] = make([]CellView, s.Board.Cols)
		for c := range cells[r] {
			cell := s.Board.Cell(r, c)
			view := CellView{Revealed: cell.Revealed}
			if cell.Revealed || s.Status.Terminal() {
				view.Kind = cell.Kind
			}
			cells[r][c] = view
		}
	}

	return GameView{
		ID:              s.ID,
		Status:          s.Status,
		Rows:            s.Board.Rows,
		Cols:            s.Board.Cols,
		Penalties:       s.Board.Penalties,
		Score:           s.Score,
		TotalReward:     s.TotalReward(),
		RevealedRewards: s.RevealedRewards,
		Cells:           cells,
	}
}

func (s GameState) Summary(high HighScore) GameSummary {
	return GameSummary{
		GameID:         s.ID,
		Status:         s.Status,
		Score:          s.Score,
		TotalReward:    s.TotalReward(),
		HighScore:      high.HighScore,
		IsNewHighScore: high.IsNewHighScore,
	}
}
