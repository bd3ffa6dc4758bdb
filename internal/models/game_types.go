package models

type GameParams struct {
	Rows      int `json:"rows"`
	Cols      int `json:"cols"`
	Penalties int `json:"penalties"`
}

// IsZero reports whether no dimension was requested, in which case the
// configured defaults apply.
func (p GameParams) IsZero() bool {
	return p == GameParams{}
}

type NewGameRequest struct {
	Rows      int `json:"rows" binding:"omitempty,min=1,max=64"`
	Cols      int `json:"cols" binding:"omitempty,min=1,max=64"`
	Penalties int `json:"penalties" binding:"omitempty,min=0"`
}

func (r NewGameRequest) Params() GameParams {
	return GameParams{Rows: r.Rows, Cols: r.Cols, Penalties: r.Penalties}
}

type RevealRequest struct {
	Row *int `json:"row" binding:"required,min=0"`
	Col *int `json:"col" binding:"required,min=0"`
}

type CellView struct {
	Revealed bool     `json:"revealed"`
	Kind     CellKind `json:"kind,omitempty"`
}

type GameView struct {
	ID              string       `json:"id"`
	Status          GameStatus   `json:"status"`
	Rows            int          `json:"rows"`
	Cols            int          `json:"cols"`
	Penalties       int          `json:"penalties"`
	Score           int          `json:"score"`
	TotalReward     int          `json:"total_reward"`
	RevealedRewards int          `json:"revealed_rewards"`
	Cells           [][]CellView `json:"cells"`
}
