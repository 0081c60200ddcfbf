package combat

import (
	"github.com/codequest-rpg/dungeon-engine/internal/dice"
	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// DamageResult is the outcome of one damage resolution
type DamageResult struct {
	Damage     int  `json:"damage"`
	IsCritical bool `json:"is_critical"`
	IsDodged   bool `json:"is_dodged"`
}

// resolvePlayerDamage computes the value of one ability use.
// Base is ability.base_value plus the scaling stat times the ratio,
// truncated toward zero. A failed challenge halves the value before the
// critical roll; a critical doubles whatever is left.
func resolvePlayerDamage(stats *entities.CharacterStats, ability *entities.Ability, challengeSuccess bool, roller dice.Roller) (*DamageResult, error) {
	damage := ability.BaseValue + int(float64(scalingStatValue(stats, ability.ScalingStat))*ability.ScalingRatio)

	if !challengeSuccess {
		damage = damage / 2
	}

	isCrit, err := roller.Chance(stats.CriticalChance)
	if err != nil {
		return nil, err
	}
	if isCrit {
		damage *= 2
	}

	return &DamageResult{
		Damage:     damage,
		IsCritical: isCrit,
	}, nil
}

// scalingStatValue looks up the scaling attribute. Only strength,
// intelligence and dexterity scale abilities; anything else contributes 0.
func scalingStatValue(stats *entities.CharacterStats, stat entities.Attribute) int {
	switch stat {
	case entities.AttributeStrength, entities.AttributeIntelligence, entities.AttributeDexterity:
		return stats.Attribute(stat)
	}
	return 0
}

// resolveEnemyDamage computes one enemy attack against the player.
// A dodge is absolute: damage 0, defense never consulted. Otherwise
// defense reduces the hit but never below 1 point of chip damage.
func resolveEnemyDamage(stats *entities.CharacterStats, enemyBaseDamage int, roller dice.Roller) (*DamageResult, error) {
	dodged, err := roller.Chance(stats.DodgeChance)
	if err != nil {
		return nil, err
	}
	if dodged {
		return &DamageResult{Damage: 0, IsDodged: true}, nil
	}

	damage := enemyBaseDamage - stats.Defense
	if damage < 1 {
		damage = 1
	}

	return &DamageResult{Damage: damage}, nil
}
