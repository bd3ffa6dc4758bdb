package models

type ScoreEntry struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

type HighScore struct {
	HighScore      int  `json:"high_score"`
	IsNewHighScore bool `json:"is_new_high_score"`
}
