package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pick is one recommended (player, stat, threshold) line generated by the
// pick service, ranked by confidence in the player sustaining the line.
type Pick struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	PlayerID       int             `db:"player_id" json:"player_id"`
	PlayerName     string          `db:"player_name" json:"player_name"`
	Team           string          `db:"team" json:"team"`
	Stat           Stat            `db:"stat" json:"stat"`
	Threshold      float64         `db:"threshold" json:"threshold"`
	HitProbability float64         `db:"hit_probability" json:"hit_probability"`
	Sustainability float64         `db:"sustainability" json:"sustainability"`
	Confidence     float64         `db:"confidence" json:"confidence"`
	FairOdds       decimal.Decimal `db:"fair_odds" json:"fair_odds"`
	Preset         string          `db:"preset" json:"preset"`
	Phase          CareerPhase     `db:"career_phase" json:"career_phase"`
	GameDate       time.Time       `db:"game_date" json:"game_date"`
	GeneratedAt    time.Time       `db:"generated_at" json:"generated_at"`
}

// Player is the minimal player identity the pick service works with.
type Player struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Team     string `db:"team" json:"team"`
	Position string `db:"position" json:"position"`
}
