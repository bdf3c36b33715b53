package model

import "time"

// Difficulty buckets questions into the three selection pools.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the pools in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question is one multiple-choice trivia question. ID is the stable external
// identifier shared with the content pipeline, never a database surrogate key.
type Question struct {
	ID           string     `json:"id" bson:"externalId"`
	Text         string     `json:"text" bson:"text"`
	Options      []string   `json:"options" bson:"options"` // exactly 4
	CorrectIndex int        `json:"correctIndex" bson:"correctIndex"`
	Explanation  string     `json:"explanation" bson:"explanation"`
	Difficulty   Difficulty `json:"difficulty" bson:"difficulty"`
	Topic        string     `json:"topic" bson:"topic"`
	DeepDive     string     `json:"deepDive,omitempty" bson:"deepDive,omitempty"`

	// Content-store bookkeeping, not part of the play payload.
	Collection string     `json:"-" bson:"collection"`
	Active     bool       `json:"-" bson:"active"`
	ExpiresAt  *time.Time `json:"-" bson:"expiresAt,omitempty"`
}
