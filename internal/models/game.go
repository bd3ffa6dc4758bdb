package models

import "time"

type CellKind string

const (
	CellReward  CellKind = "reward"
	CellPenalty CellKind = "penalty"
)

type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusWon    GameStatus = "won"
	GameStatusLost   GameStatus = "lost"
)

// Terminal reports whether no further reveals are accepted.
func (s GameStatus) Terminal() bool {
	return s == GameStatusWon || s == GameStatusLost
}

type Cell struct {
	Kind     CellKind `json:"kind"`
	Revealed bool     `json:"revealed"`
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a rows × cols grid. Cells is indexed [row][col].
type Board struct {
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	Penalties int      `json:"penalties"`
	Cells     [][]Cell `json:"cells"`
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

func (b Board) Cell(row, col int) Cell {
	return b.Cells[row][col]
}

func (b Board) RewardCount() int {
	return b.Rows*b.Cols - b.Penalties
}

type GameState struct {
	ID              string     `json:"id"`
	Status          GameStatus `json:"status"`
	Board           Board      `json:"board"`
	Score           int        `json:"score"`
	RevealedRewards int        `json:"revealed_rewards"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         time.Time  `json:"ended_at,omitempty"`
}

func (s GameState) TotalReward() int {
	return s.Board.RewardCount()
}

// RevealDelta describes what a single reveal changed. The zero value is the
// empty delta returned for no-op reveals.
type RevealDelta struct {
	Changed     bool       `json:"changed"`
	Coord       Coord      `json:"coord"`
	Kind        CellKind   `json:"kind,omitempty"`
	ScoreGained int        `json:"score_gained"`
	Outcome     GameStatus `json:"outcome,omitempty"`
}

// Terminal is true only for the reveal that ended the game.
func (d RevealDelta) Terminal() bool {
	return d.Outcome.Terminal()
}

type RevealResult struct {
	GameID      string      `json:"game_id"`
	State       GameStatus  `json:"state"`
	Score       int         `json:"score"`
	TotalReward int         `json:"total_reward"`
	Delta       RevealDelta `json:"delta"`
}

type GameSummary struct {
	GameID         string     `json:"game_id"`
	Status         GameStatus `json:"status"`
	Score          int        `json:"score"`
	TotalReward    int        `json:"total_reward"`
	HighScore      int        `json:"high_score"`
	IsNewHighScore bool       `json:"is_new_high_score"`
}
