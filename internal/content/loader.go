// Package content loads the authored game catalog from YAML fixtures and
// seeds it into a catalog repository.
package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
)

// Bundle is the merged content of one or more fixture files
type Bundle struct {
	Abilities   []*entities.Ability           `yaml:"abilities"`
	Enemies     []*entities.EnemyType         `yaml:"enemies"`
	Bosses      []*entities.BossEnemy         `yaml:"bosses"`
	Locations   []*entities.NarrativeLocation `yaml:"locations"`
	Choices     []*entities.NarrativeChoice   `yaml:"choices"`
	Outcomes    []*entities.NarrativeOutcome  `yaml:"outcomes"`
	Consumables []*entities.ConsumableItem    `yaml:"consumables"`
	Equipment   []*entities.EquipmentItem     `yaml:"equipment"`
}

// LoadFile parses one fixture file
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &bundle, nil
}

// LoadDir parses and merges every .yaml file in dir, in name order
func LoadDir(dir string) (*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	merged := &Bundle{}
	for _, name := range names {
		bundle, loadErr := LoadFile(filepath.Join(dir, name))
		if loadErr != nil {
			return nil, loadErr
		}
		merged.merge(bundle)
	}
	return merged, nil
}

func (b *Bundle) merge(other *Bundle) {
	b.Abilities = append(b.Abilities, other.Abilities...)
	b.Enemies = append(b.Enemies, other.Enemies...)
	b.Bosses = append(b.Bosses, other.Bosses...)
	b.Locations = append(b.Locations, other.Locations...)
	b.Choices = append(b.Choices, other.Choices...)
	b.Outcomes = append(b.Outcomes, other.Outcomes...)
	b.Consumables = append(b.Consumables, other.Consumables...)
	b.Equipment = append(b.Equipment, other.Equipment...)
}

// Seed writes every row of the bundle into the catalog repository
func (b *Bundle) Seed(ctx context.Context, repo catalog.Repository) error {
	for _, ability := range b.Abilities {
		if err := repo.PutAbility(ctx, ability); err != nil {
			return fmt.Errorf("failed to seed ability %s: %w", ability.ID, err)
		}
	}
	for _, enemy := range b.Enemies {
		if err := repo.PutEnemy(ctx, enemy); err != nil {
			return fmt.Errorf("failed to seed enemy %s: %w", enemy.ID, err)
		}
	}
	for _, boss := range b.Bosses {
		if err := repo.PutBoss(ctx, boss); err != nil {
			return fmt.Errorf("failed to seed boss %s: %w", boss.ID, err)
		}
	}
	for _, location := range b.Locations {
		if err := repo.PutLocation(ctx, location); err != nil {
			return fmt.Errorf("failed to seed location %s: %w", location.ID, err)
		}
	}
	for _, choice := range b.Choices {
		if err := repo.PutChoice(ctx, choice); err != nil {
			return fmt.Errorf("failed to seed choice %s: %w", choice.ID, err)
		}
	}
	for _, outcome := range b.Outcomes {
		if err := repo.PutOutcome(ctx, outcome); err != nil {
			return fmt.Errorf("failed to seed outcome %s: %w", outcome.ID, err)
		}
	}
	for _, item := range b.Consumables {
		if err := repo.PutConsumable(ctx, item); err != nil {
			return fmt.Errorf("failed to seed consumable %s: %w", item.ID, err)
		}
	}
	for _, item := range b.Equipment {
		if err := repo.PutEquipment(ctx, item); err != nil {
			return fmt.Errorf("failed to seed equipment %s: %w", item.ID, err)
		}
	}
	return nil
}
