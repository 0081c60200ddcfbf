package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
)

const abilitiesFixture = `
abilities:
  - id: slash
    name: Slash
    ability_type: attack
    base_value: 10
    scaling_stat: strength
    scaling_ratio: 0.5
    required_level: 1
`

const floorFixture = `
enemies:
  - id: null_slime
    name: Null Slime
    floor_number: 1
    base_health: 40
    base_damage: 12
    spawn_weight: 3
    gold_drop_min: 5
    gold_drop_max: 12
    xp_reward: 20
locations:
  - id: f1_entrance
    floor_number: 1
    name: Entrance
    location_type: start
choices:
  - id: f1_climb
    location_id: f1_entrance
    choice_text: Climb the wall
    requires_skill_check: true
    skill_type: strength
    skill_dc: 12
outcomes:
  - id: f1_climb_success
    choice_id: f1_climb
    outcome_type: success
    rewards:
      gold: 25
      heal: full
`

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "abilities.yaml", abilitiesFixture)

	bundle, err := LoadFile(filepath.Join(dir, "abilities.yaml"))
	require.NoError(t, err)
	require.Len(t, bundle.Abilities, 1)
	assert.Equal(t, "slash", bundle.Abilities[0].ID)
	assert.Equal(t, entities.AttributeStrength, bundle.Abilities[0].ScalingStat)
	assert.InDelta(t, 0.5, bundle.Abilities[0].ScalingRatio, 1e-9)
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.yaml", "abilities: [")

	_, err := LoadFile(filepath.Join(dir, "broken.yaml"))
	assert.Error(t, err)
}

func TestLoadDirMerges(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "abilities.yaml", abilitiesFixture)
	writeFixture(t, dir, "floor1.yml", floorFixture)
	writeFixture(t, dir, "notes.txt", "not a fixture")

	bundle, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, bundle.Abilities, 1)
	assert.Len(t, bundle.Enemies, 1)
	assert.Len(t, bundle.Locations, 1)
	assert.Len(t, bundle.Choices, 1)
	assert.Len(t, bundle.Outcomes, 1)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "abilities.yaml", abilitiesFixture)
	writeFixture(t, dir, "floor1.yaml", floorFixture)

	bundle, err := LoadDir(dir)
	require.NoError(t, err)

	ctx := context.Background()
	repo := catalog.NewInMemoryRepository()
	require.NoError(t, bundle.Seed(ctx, repo))

	ability, err := repo.GetAbility(ctx, "slash")
	require.NoError(t, err)
	require.NotNil(t, ability)

	start, err := repo.GetStartLocation(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, "f1_entrance", start.ID)

	outcome, err := repo.GetOutcome(ctx, "f1_climb", entities.OutcomeSuccess)
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, 25, outcome.Rewards.Gold)
	assert.True(t, outcome.Rewards.Heal.Full)
}
