package entities

import "time"

// CombatEffect is a serialized buff or debuff attached to a combat session.
// Stored for save-game fidelity; the turn engine does not yet read these
// back into the damage formulas.
type CombatEffect struct {
	Name      string `json:"name"`
	Stat      string `json:"stat"`
	Amount    int    `json:"amount"`
	TurnsLeft int    `json:"turns_left"`
}

// CombatSession is the ephemeral per-user combat state between StartCombat
// and victory/defeat. Enemy stats are snapshotted at combat start.
type CombatSession struct {
	UserID             string         `json:"user_id"`
	EnemyID            string         `json:"enemy_id"`
	EnemyName          string         `json:"enemy_name"`
	EnemyCurrentHealth int            `json:"enemy_current_health"`
	EnemyMaxHealth     int            `json:"enemy_max_health"`
	EnemyDamage        int            `json:"enemy_damage"`
	EnemyDefense       int            `json:"enemy_defense"`
	IsBoss             bool           `json:"is_boss"`
	CombatTurn         int            `json:"combat_turn"`
	AbilityCooldowns   map[string]int `json:"ability_cooldowns"`
	ActiveBuffs        []CombatEffect `json:"active_buffs"`
	ActiveDebuffs      []CombatEffect `json:"active_debuffs"`
	StartedAt          time.Time      `json:"started_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// OnCooldown reports whether abilityID still has cooldown turns remaining
func (c *CombatSession) OnCooldown(abilityID string) (int, bool) {
	turns, ok := c.AbilityCooldowns[abilityID]
	return turns, ok && turns > 0
}

// StartCooldown records a fresh cooldown for abilityID. A zero duration
// clears any stale entry instead.
func (c *CombatSession) StartCooldown(abilityID string, turns int) {
	if c.AbilityCooldowns == nil {
		c.AbilityCooldowns = make(map[string]int)
	}
	if turns <= 0 {
		delete(c.AbilityCooldowns, abilityID)
		return
	}
	c.AbilityCooldowns[abilityID] = turns
}

// TickCooldowns decrements every cooldown by one turn, dropping expired ones
func (c *CombatSession) TickCooldowns() {
	for id, turns := range c.AbilityCooldowns {
		if turns <= 1 {
			delete(c.AbilityCooldowns, id)
			continue
		}
		c.AbilityCooldowns[id] = turns - 1
	}
}

// ApplyDamageToEnemy reduces the enemy's health, floored at 0, and reports
// whether the enemy was defeated.
func (c *CombatSession) ApplyDamageToEnemy(damage int) bool {
	c.EnemyCurrentHealth -= damage
	if c.EnemyCurrentHealth < 0 {
		c.EnemyCurrentHealth = 0
	}
	return c.EnemyCurrentHealth <= 0
}
