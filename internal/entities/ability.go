package entities

// AbilityType classifies what an ability does when used
type AbilityType string

const (
	AbilityTypeAttack AbilityType = "attack"
	AbilityTypeHeal   AbilityType = "heal"
	AbilityTypeBuff   AbilityType = "buff"
)

// Ability is a catalog entry describing one usable combat ability.
// Read-only at combat time.
type Ability struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description" yaml:"description"`
	AbilityType   AbilityType `json:"ability_type" yaml:"ability_type"`
	RequiredLevel int         `json:"required_level" yaml:"required_level"`
	ManaCost      int         `json:"mana_cost" yaml:"mana_cost"`
	CooldownTurns int         `json:"cooldown_turns" yaml:"cooldown_turns"`
	BaseValue     int         `json:"base_value" yaml:"base_value"`
	ScalingStat   Attribute   `json:"scaling_stat" yaml:"scaling_stat"`
	ScalingRatio  float64     `json:"scaling_ratio" yaml:"scaling_ratio"`
	AnimationText string      `json:"animation_text,omitempty" yaml:"animation_text,omitempty"`
}
