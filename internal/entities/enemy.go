package entities

// EnemyType is a catalog entry for a regular dungeon enemy
type EnemyType struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	BaseHealth   int    `json:"base_health" yaml:"base_health"`
	BaseDamage   int    `json:"base_damage" yaml:"base_damage"`
	BaseDefense  int    `json:"base_defense" yaml:"base_defense"`
	BehaviorType string `json:"behavior_type" yaml:"behavior_type"`
	GoldDropMin  int    `json:"gold_drop_min" yaml:"gold_drop_min"`
	GoldDropMax  int    `json:"gold_drop_max" yaml:"gold_drop_max"`
	XPReward     int    `json:"xp_reward" yaml:"xp_reward"`
	FloorNumber  int    `json:"floor_number" yaml:"floor_number"`
	SpawnWeight  int    `json:"spawn_weight" yaml:"spawn_weight"`
}

// BossEnemy is a catalog entry for a floor boss
type BossEnemy struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	FloorNumber int    `json:"floor_number" yaml:"floor_number"`
	Health      int    `json:"health" yaml:"health"`
	Damage      int    `json:"damage" yaml:"damage"`
	Defense     int    `json:"defense" yaml:"defense"`
	GoldReward  int    `json:"gold_reward" yaml:"gold_reward"`
	XPReward    int    `json:"xp_reward" yaml:"xp_reward"`
}
