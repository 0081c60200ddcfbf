package entities

import "time"

// Attribute names a base character attribute
type Attribute string

const (
	AttributeStrength     Attribute = "strength"
	AttributeIntelligence Attribute = "intelligence"
	AttributeDexterity    Attribute = "dexterity"
	AttributeCharisma     Attribute = "charisma"
)

// ValidAttribute reports whether name is a spendable attribute
func ValidAttribute(name Attribute) bool {
	switch name {
	case AttributeStrength, AttributeIntelligence, AttributeDexterity, AttributeCharisma:
		return true
	}
	return false
}

// CharacterStats is one player's RPG sheet. Derived fields (max health/mana,
// defense, crit and dodge chance) are recomputed from level and attributes
// whenever either changes.
type CharacterStats struct {
	UserID              string    `json:"user_id"`
	Level               int       `json:"level"`
	Strength            int       `json:"strength"`
	Intelligence        int       `json:"intelligence"`
	Dexterity           int       `json:"dexterity"`
	Charisma            int       `json:"charisma"`
	CurrentXP           int       `json:"current_xp"`
	MaxHealth           int       `json:"max_health"`
	CurrentHealth       int       `json:"current_health"`
	MaxMana             int       `json:"max_mana"`
	CurrentMana         int       `json:"current_mana"`
	BaseDamage          int       `json:"base_damage"`
	Defense             int       `json:"defense"`
	CriticalChance      float64   `json:"critical_chance"`
	DodgeChance         float64   `json:"dodge_chance"`
	StatPointsAvailable int       `json:"stat_points_available"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewCharacterStats returns the starting sheet for a fresh player
func NewCharacterStats(userID string) *CharacterStats {
	now := time.Now().UTC()
	return &CharacterStats{
		UserID:              userID,
		Level:               1,
		Strength:            1,
		Intelligence:        1,
		Dexterity:           1,
		Charisma:            1,
		MaxHealth:           50,
		CurrentHealth:       50,
		MaxMana:             30,
		CurrentMana:         30,
		BaseDamage:          10,
		Defense:             5,
		CriticalChance:      0.05,
		DodgeChance:         0.05,
		StatPointsAvailable: 2,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Attribute returns the value of a base attribute, 0 for unknown names
func (s *CharacterStats) Attribute(name Attribute) int {
	switch name {
	case AttributeStrength:
		return s.Strength
	case AttributeIntelligence:
		return s.Intelligence
	case AttributeDexterity:
		return s.Dexterity
	case AttributeCharisma:
		return s.Charisma
	}
	return 0
}

// RecalculateDerived recomputes the derived combat stats from level and
// attributes. Current health/mana are clamped into the new maxima.
func (s *CharacterStats) RecalculateDerived() {
	s.MaxHealth = 100 + s.Level*10
	s.MaxMana = 50 + s.Intelligence*2
	s.Defense = 5 + s.Strength/5
	s.CriticalChance = 0.05 + float64(s.Dexterity)*0.005
	s.DodgeChance = 0.05 + float64(s.Dexterity)*0.003

	if s.CurrentHealth > s.MaxHealth {
		s.CurrentHealth = s.MaxHealth
	}
	if s.CurrentMana > s.MaxMana {
		s.CurrentMana = s.MaxMana
	}
}

// ApplyDamage reduces current health, floored at 0
func (s *CharacterStats) ApplyDamage(damage int) {
	s.CurrentHealth -= damage
	if s.CurrentHealth < 0 {
		s.CurrentHealth = 0
	}
}

// Heal adds health, clamped to the maximum
func (s *CharacterStats) Heal(amount int) {
	s.CurrentHealth += amount
	if s.CurrentHealth > s.MaxHealth {
		s.CurrentHealth = s.MaxHealth
	}
}

// RestoreAll refills health and mana to their maxima
func (s *CharacterStats) RestoreAll() {
	s.CurrentHealth = s.MaxHealth
	s.CurrentMana = s.MaxMana
}

// SpendMana deducts mana; the caller checks availability first
func (s *CharacterStats) SpendMana(cost int) {
	s.CurrentMana -= cost
	if s.CurrentMana < 0 {
		s.CurrentMana = 0
	}
}
