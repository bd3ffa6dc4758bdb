package services_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"minestake-backend/internal/logging"
	"minestake-backend/internal/models"
	"minestake-backend/internal/services"
)

// boardFrom builds a board from rows of '.' (reward) and 'x' (penalty).
func boardFrom(t *testing.T, rows ...string) models.Board {
	t.Helper()

	board := models.Board{Rows: len(rows), Cols: len(rows[0])}
	for _, line := range rows {
		if len(line) != board.Cols {
			t.Fatalf("ragged board row %q", line)
		}
		cells := make([]models.Cell, len(line))
		for c, ch := range line {
			cells[c] = models.Cell{Kind: models.CellReward}
			if ch == 'x' {
				cells[c].Kind = models.CellPenalty
				board.Penalties++
			}
		}
		board.Cells = append(board.Cells, cells)
	}
	return board
}

func cellsOf(board models.Board, kind models.CellKind) []models.Coord {
	var coords []models.Coord
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			if board.Cell(r, c).Kind == kind {
				coords = append(coords, models.Coord{Row: r, Col: c})
			}
		}
	}
	return coords
}

func newTestPersister(t *testing.T, store services.KeyValueStore) *services.Persister {
	t.Helper()
	p := services.NewPersister(store, discardLogger(), time.Second)
	t.Cleanup(p.Close)
	return p
}

func discardLogger() *logrus.Logger {
	return logging.Discard()
}
