package entities

import "time"

// ConsumableItem is a catalog entry for a single-use item
type ConsumableItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Effect      string `json:"effect,omitempty" yaml:"effect,omitempty"`
	EffectValue int    `json:"effect_value,omitempty" yaml:"effect_value,omitempty"`
	Value       int    `json:"value" yaml:"value"`
}

// EquipmentItem is a catalog entry for wearable gear
type EquipmentItem struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	Slot          string  `json:"slot" yaml:"slot"`
	Tier          string  `json:"tier" yaml:"tier"`
	RequiredLevel int     `json:"required_level" yaml:"required_level"`
	DamageBonus   int     `json:"damage_bonus,omitempty" yaml:"damage_bonus,omitempty"`
	DefenseBonus  int     `json:"defense_bonus,omitempty" yaml:"defense_bonus,omitempty"`
	HPBonus       int     `json:"hp_bonus,omitempty" yaml:"hp_bonus,omitempty"`
	ManaBonus     int     `json:"mana_bonus,omitempty" yaml:"mana_bonus,omitempty"`
	CritBonus     float64 `json:"critical_chance_bonus,omitempty" yaml:"critical_chance_bonus,omitempty"`
	Value         int     `json:"value" yaml:"value"`
}

// InventoryItem is one stacked row of a player's inventory
type InventoryItem struct {
	UserID     string    `json:"user_id"`
	ItemID     string    `json:"item_id"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}
