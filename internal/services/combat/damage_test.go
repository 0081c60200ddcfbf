package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/codequest-rpg/dungeon-engine/internal/dice/mock"
	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

func strengthAbility(baseValue int, ratio float64) *entities.Ability {
	return &entities.Ability{
		ID:           "test-strike",
		Name:         "Test Strike",
		AbilityType:  entities.AbilityTypeAttack,
		BaseValue:    baseValue,
		ScalingStat:  entities.AttributeStrength,
		ScalingRatio: ratio,
	}
}

func TestResolvePlayerDamage(t *testing.T) {
	tests := []struct {
		name             string
		stats            *entities.CharacterStats
		ability          *entities.Ability
		challengeSuccess bool
		crit             bool
		wantDamage       int
	}{
		{
			name:             "base plus scaled strength",
			stats:            &entities.CharacterStats{Strength: 20},
			ability:          strengthAbility(10, 0.5),
			challengeSuccess: true,
			wantDamage:       20,
		},
		{
			name:             "failed challenge halves damage",
			stats:            &entities.CharacterStats{Strength: 20},
			ability:          strengthAbility(10, 0.5),
			challengeSuccess: false,
			wantDamage:       10,
		},
		{
			name:             "critical doubles after halving",
			stats:            &entities.CharacterStats{Strength: 20},
			ability:          strengthAbility(10, 0.5),
			challengeSuccess: false,
			crit:             true,
			wantDamage:       20,
		},
		{
			name:             "scaling truncates toward zero",
			stats:            &entities.CharacterStats{Strength: 7},
			ability:          strengthAbility(10, 0.5),
			challengeSuccess: true,
			wantDamage:       13,
		},
		{
			name:  "intelligence scaling",
			stats: &entities.CharacterStats{Intelligence: 10},
			ability: &entities.Ability{
				BaseValue:    18,
				ScalingStat:  entities.AttributeIntelligence,
				ScalingRatio: 0.8,
			},
			challengeSuccess: true,
			wantDamage:       26,
		},
		{
			name:  "charisma does not scale abilities",
			stats: &entities.CharacterStats{Charisma: 50},
			ability: &entities.Ability{
				BaseValue:    10,
				ScalingStat:  entities.AttributeCharisma,
				ScalingRatio: 1.0,
			},
			challengeSuccess: true,
			wantDamage:       10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetChances([]bool{tt.crit})

			result, err := resolvePlayerDamage(tt.stats, tt.ability, tt.challengeSuccess, roller)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, result.Damage)
			assert.Equal(t, tt.crit, result.IsCritical)
		})
	}
}

func TestResolvePlayerDamage_CritExactlyDoubles(t *testing.T) {
	stats := &entities.CharacterStats{Strength: 13}
	ability := strengthAbility(7, 0.7)

	for _, challengeSuccess := range []bool{true, false} {
		roller := mockdice.NewManualMockRoller()
		roller.SetChances([]bool{false})
		plain, err := resolvePlayerDamage(stats, ability, challengeSuccess, roller)
		require.NoError(t, err)

		roller.SetChances([]bool{true})
		crit, err := resolvePlayerDamage(stats, ability, challengeSuccess, roller)
		require.NoError(t, err)

		assert.Equal(t, plain.Damage*2, crit.Damage)
	}
}

func TestResolveEnemyDamage(t *testing.T) {
	tests := []struct {
		name            string
		enemyBaseDamage int
		defense         int
		dodge           bool
		wantDamage      int
	}{
		{
			name:            "defense reduces damage",
			enemyBaseDamage: 15,
			defense:         5,
			wantDamage:      10,
		},
		{
			name:            "defense above damage leaves chip damage",
			enemyBaseDamage: 15,
			defense:         20,
			wantDamage:      1,
		},
		{
			name:            "dodge is absolute",
			enemyBaseDamage: 100,
			defense:         0,
			dodge:           true,
			wantDamage:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetChances([]bool{tt.dodge})

			stats := &entities.CharacterStats{Defense: tt.defense}
			result, err := resolveEnemyDamage(stats, tt.enemyBaseDamage, roller)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, result.Damage)
			assert.Equal(t, tt.dodge, result.IsDodged)
		})
	}
}
