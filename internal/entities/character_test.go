package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculateDerived(t *testing.T) {
	stats := NewCharacterStats("user-123")
	stats.Level = 2
	stats.Strength = 10
	stats.Intelligence = 5
	stats.Dexterity = 10

	stats.RecalculateDerived()

	assert.Equal(t, 120, stats.MaxHealth)
	assert.Equal(t, 60, stats.MaxMana)
	assert.Equal(t, 7, stats.Defense)
	assert.InDelta(t, 0.10, stats.CriticalChance, 1e-9)
	assert.InDelta(t, 0.08, stats.DodgeChance, 1e-9)
}

func TestRecalculateDerivedClampsCurrents(t *testing.T) {
	stats := NewCharacterStats("user-123")
	stats.CurrentHealth = 500
	stats.CurrentMana = 500

	stats.RecalculateDerived()

	assert.Equal(t, stats.MaxHealth, stats.CurrentHealth)
	assert.Equal(t, stats.MaxMana, stats.CurrentMana)
}

func TestApplyDamageFloorsAtZero(t *testing.T) {
	stats := NewCharacterStats("user-123")

	stats.ApplyDamage(30)
	assert.Equal(t, 20, stats.CurrentHealth)

	stats.ApplyDamage(100)
	assert.Equal(t, 0, stats.CurrentHealth)
}

func TestHealClampsAtMax(t *testing.T) {
	stats := NewCharacterStats("user-123")
	stats.CurrentHealth = 40

	stats.Heal(5)
	assert.Equal(t, 45, stats.CurrentHealth)

	stats.Heal(100)
	assert.Equal(t, 50, stats.CurrentHealth)
}

func TestAttributeLookup(t *testing.T) {
	stats := NewCharacterStats("user-123")
	stats.Strength = 7

	assert.Equal(t, 7, stats.Attribute(AttributeStrength))
	assert.Equal(t, 1, stats.Attribute(AttributeCharisma))
	assert.Equal(t, 0, stats.Attribute("luck"))
}

func TestValidAttribute(t *testing.T) {
	assert.True(t, ValidAttribute(AttributeStrength))
	assert.True(t, ValidAttribute(AttributeCharisma))
	assert.False(t, ValidAttribute("luck"))
}
