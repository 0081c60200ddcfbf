package entities

import "time"

// CombatLogEntry is an immutable audit row written when combat ends
type CombatLogEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EnemyID     string    `json:"enemy_id"`
	EnemyName   string    `json:"enemy_name"`
	FloorNumber int       `json:"floor_number"`
	IsBoss      bool      `json:"is_boss"`
	Victory     bool      `json:"victory"`
	TurnsTaken  int       `json:"turns_taken"`
	DamageDealt int       `json:"damage_dealt"`
	DamageTaken int       `json:"damage_taken"`
	XPGained    int       `json:"xp_gained"`
	GoldGained  int       `json:"gold_gained"`
	CreatedAt   time.Time `json:"created_at"`
}

// SkillCheckRecord is an immutable audit row written per resolved check
type SkillCheckRecord struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	ChoiceID         string      `json:"choice_id"`
	SkillType        string      `json:"skill_type"`
	SkillDC          int         `json:"skill_dc"`
	DiceRoll         int         `json:"dice_roll"`
	StatModifier     int         `json:"stat_modifier"`
	ChallengeSuccess bool        `json:"challenge_success"`
	TotalRoll        int         `json:"total_roll"`
	CheckPassed      bool        `json:"check_passed"`
	OutcomeType      OutcomeType `json:"outcome_type"`
	CreatedAt        time.Time   `json:"created_at"`
}
