package entities

import "time"

// DungeonProgress tracks one player's position and lifetime tallies in the
// dungeon. in_combat gates exploration while a CombatSession exists.
type DungeonProgress struct {
	UserID               string    `json:"user_id"`
	CurrentFloor         int       `json:"current_floor"`
	DeepestFloorReached  int       `json:"deepest_floor_reached"`
	InCombat             bool      `json:"in_combat"`
	CurrentEnemyID       string    `json:"current_enemy_id,omitempty"`
	CurrentEnemyHealth   int       `json:"current_enemy_health,omitempty"`
	CurrentRoomType      string    `json:"current_room_type,omitempty"`
	TotalEnemiesDefeated int       `json:"total_enemies_defeated"`
	TotalBossesDefeated  int       `json:"total_bosses_defeated"`
	TotalFloorsCleared   int       `json:"total_floors_cleared"`
	TotalDeaths          int       `json:"total_deaths"`
	TotalGoldEarned      int       `json:"total_gold_earned"`
	TotalXPEarned        int       `json:"total_xp_earned"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewDungeonProgress returns the initial exploration state at floor 1
func NewDungeonProgress(userID string) *DungeonProgress {
	now := time.Now().UTC()
	return &DungeonProgress{
		UserID:              userID,
		CurrentFloor:        1,
		DeepestFloorReached: 1,
		CurrentRoomType:     "entrance",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// EnterCombat flags the player as fighting the given enemy
func (p *DungeonProgress) EnterCombat(enemyID string, enemyHealth int) {
	p.InCombat = true
	p.CurrentEnemyID = enemyID
	p.CurrentEnemyHealth = enemyHealth
}

// LeaveCombat clears the combat flag and enemy pointer
func (p *DungeonProgress) LeaveCombat() {
	p.InCombat = false
	p.CurrentEnemyID = ""
	p.CurrentEnemyHealth = 0
}
