package models_test

import (
	"errors"
	"testing"

	"minestake-backend/internal/models"
)

func TestGameParamsValidate(t *testing.T) {
	cases := []struct {
		name   string
		params models.GameParams
		valid  bool
	}{
		{"default board", models.GameParams{Rows: 5, Cols: 5, Penalties: 6}, true},
		{"no penalties", models.GameParams{Rows: 2, Cols: 2, Penalties: 0}, true},
		{"one reward left", models.GameParams{Rows: 2, Cols: 2, Penalties: 3}, true},
		{"zero rows", models.GameParams{Rows: 0, Cols: 5, Penalties: 1}, false},
		{"negative cols", models.GameParams{Rows: 5, Cols: -1, Penalties: 1}, false},
		{"negative penalties", models.GameParams{Rows: 5, Cols: 5, Penalties: -1}, false},
		{"board full of penalties", models.GameParams{Rows: 2, Cols: 2, Penalties: 4}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.valid && err != nil {
				t.Fatalf("expected valid params, got %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, models.ErrInvalidBoardParams) {
					t.Errorf("expected ErrInvalidBoardParams, got %v", err)
				}
				var paramsErr models.InvalidBoardParamsError
				if !errors.As(err, &paramsErr) {
					t.Errorf("expected InvalidBoardParamsError, got %T", err)
				}
			}
		})
	}
}

func TestGameStateView(t *testing.T) {
	state := models.GameState{
		ID:     models.GenerateGameID(),
		Status: models.GameStatusActive,
		Board: models.Board{
			Rows:      1,
			Cols:      2,
			Penalties: 1,
			Cells: [][]models.Cell{{
				{Kind: models.CellReward, Revealed: true},
				{Kind: models.CellPenalty},
			}},
		},
		Score:           1,
		RevealedRewards: 1,
	}

	if state.ID == "" {
		t.Fatal("game ID should not be empty")
	}

	view := state.View()
	if view.TotalReward != 1 {
		t.Errorf("expected total reward 1, got %d", view.TotalReward)
	}
	if view.Cells[0][0].Kind != models.CellReward {
		t.Errorf("revealed cell should expose its kind, got %q", view.Cells[0][0].Kind)
	}
	if view.Cells[0][1].Kind != "" {
		t.Errorf("unrevealed cell should hide its kind while active, got %q", view.Cells[0][1].Kind)
	}

	state.Status = models.GameStatusLost
	view = state.View()
	if view.Cells[0][1].Kind != models.CellPenalty {
		t.Errorf("finished game should expose every kind, got %q", view.Cells[0][1].Kind)
	}
}

func TestInvalidMoveError(t *testing.T) {
	err := error(models.InvalidMoveError{Row: 7, Col: 0, Rows: 5, Cols: 5})
	if !errors.Is(err, models.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}
