package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// OutcomeType names which outcome row a resolved choice selects
type OutcomeType string

const (
	OutcomeCriticalSuccess OutcomeType = "critical_success"
	OutcomeSuccess         OutcomeType = "success"
	OutcomeFailure         OutcomeType = "failure"
	OutcomeCriticalFailure OutcomeType = "critical_failure"
	OutcomeDefault         OutcomeType = "default"
)

// NarrativeLocation is a node in the narrative graph
type NarrativeLocation struct {
	ID           string `json:"id" yaml:"id"`
	FloorNumber  int    `json:"floor_number" yaml:"floor_number"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	LocationType string `json:"location_type" yaml:"location_type"`
	IsRepeatable bool   `json:"is_repeatable" yaml:"is_repeatable"`
}

// LocationTypeStart marks the entry location of a floor
const LocationTypeStart = "start"

// NarrativeChoice is an option offered at a location. A choice either
// requires a skill check (d20 + modifier vs DC) or resolves unconditionally
// through its default outcome.
type NarrativeChoice struct {
	ID                  string         `json:"id" yaml:"id"`
	LocationID          string         `json:"location_id" yaml:"location_id"`
	ChoiceText          string         `json:"choice_text" yaml:"choice_text"`
	RequiresSkillCheck  bool           `json:"requires_skill_check" yaml:"requires_skill_check"`
	SkillType           string         `json:"skill_type,omitempty" yaml:"skill_type,omitempty"`
	SkillDC             int            `json:"skill_dc,omitempty" yaml:"skill_dc,omitempty"`
	ChallengeActionType string         `json:"challenge_action_type,omitempty" yaml:"challenge_action_type,omitempty"`
	DisplayOrder        int            `json:"display_order" yaml:"display_order"`
	RequiresFlag        map[string]any `json:"requires_flag,omitempty" yaml:"requires_flag,omitempty"`
}

// VisibleWith reports whether the choice should be offered given the
// player's story flags: every required flag must be present with an equal
// value. Absent flags or type mismatches hide the choice.
func (c *NarrativeChoice) VisibleWith(flags map[string]any) bool {
	for key, required := range c.RequiresFlag {
		have, ok := flags[key]
		if !ok || !flagValueEqual(have, required) {
			return false
		}
	}
	return true
}

// flagValueEqual compares flag values across JSON/YAML decodings, where the
// same number may arrive as int, int64 or float64.
func flagValueEqual(a, b any) bool {
	if an, aok := toFloat(a); aok {
		bn, bok := toFloat(b)
		return bok && an == bn
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// HealAmount is either a flat amount or the literal "full"
type HealAmount struct {
	Full   bool
	Amount int
}

// MarshalJSON encodes "full" or the numeric amount
func (h HealAmount) MarshalJSON() ([]byte, error) {
	if h.Full {
		return json.Marshal("full")
	}
	return json.Marshal(h.Amount)
}

// UnmarshalJSON accepts "full" or a number
func (h *HealAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "full" {
			return fmt.Errorf("invalid heal amount %q", s)
		}
		h.Full = true
		return nil
	}
	return json.Unmarshal(data, &h.Amount)
}

// UnmarshalYAML accepts "full" or a number
func (h *HealAmount) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		if s != "full" {
			return fmt.Errorf("invalid heal amount %q", s)
		}
		h.Full = true
		return nil
	}
	return value.Decode(&h.Amount)
}

// OutcomeRewards are granted the first time a player completes an outcome
type OutcomeRewards struct {
	Gold  int         `json:"gold,omitempty" yaml:"gold,omitempty"`
	XP    int         `json:"xp,omitempty" yaml:"xp,omitempty"`
	Heal  *HealAmount `json:"heal,omitempty" yaml:"heal,omitempty"`
	Items []string    `json:"items,omitempty" yaml:"items,omitempty"`
}

// OutcomePenalties are applied on every completion, repeat or not
type OutcomePenalties struct {
	Damage int `json:"damage,omitempty" yaml:"damage,omitempty"`
	Gold   int `json:"gold,omitempty" yaml:"gold,omitempty"`
}

// NarrativeOutcome is one result row for a (choice, outcome type) pair.
// TriggersCombat and EnemyID are carried for the caller; the resolver does
// not start combat itself.
type NarrativeOutcome struct {
	ID             string            `json:"id" yaml:"id"`
	ChoiceID       string            `json:"choice_id" yaml:"choice_id"`
	OutcomeType    OutcomeType       `json:"outcome_type" yaml:"outcome_type"`
	Description    string            `json:"description" yaml:"description"`
	NextLocationID string            `json:"next_location_id,omitempty" yaml:"next_location_id,omitempty"`
	Rewards        *OutcomeRewards   `json:"rewards,omitempty" yaml:"rewards,omitempty"`
	Penalties      *OutcomePenalties `json:"penalties,omitempty" yaml:"penalties,omitempty"`
	SetsFlags      map[string]any    `json:"sets_flags,omitempty" yaml:"sets_flags,omitempty"`
	TriggersCombat bool              `json:"triggers_combat,omitempty" yaml:"triggers_combat,omitempty"`
	EnemyID        string            `json:"enemy_id,omitempty" yaml:"enemy_id,omitempty"`
	EnemyCount     int               `json:"enemy_count,omitempty" yaml:"enemy_count,omitempty"`
}

// CompletionKey is the idempotence ledger key for this outcome
func (o *NarrativeOutcome) CompletionKey() string {
	return fmt.Sprintf("%s:%s", o.ChoiceID, o.OutcomeType)
}

// NarrativeProgress is one player's traversal state through the narrative
// graph. CompletedChoices is the one-time-reward ledger.
type NarrativeProgress struct {
	UserID                string         `json:"user_id"`
	FloorNumber           int            `json:"floor_number"`
	CurrentLocationID     string         `json:"current_location_id,omitempty"`
	VisitedLocations      []string       `json:"visited_locations"`
	CompletedChoices      []string       `json:"completed_choices"`
	StoryFlags            map[string]any `json:"story_flags"`
	LastRoll              int            `json:"last_roll,omitempty"`
	LastSkillType         string         `json:"last_skill_type,omitempty"`
	LastSkillDC           int            `json:"last_skill_dc,omitempty"`
	LastModifier          int            `json:"last_modifier,omitempty"`
	LastChallengeSuccess  bool           `json:"last_challenge_success,omitempty"`
	TotalSkillChecks      int            `json:"total_skill_checks"`
	SuccessfulSkillChecks int            `json:"successful_skill_checks"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// NewNarrativeProgress returns the initial traversal state at floor 1
func NewNarrativeProgress(userID string) *NarrativeProgress {
	now := time.Now().UTC()
	return &NarrativeProgress{
		UserID:      userID,
		FloorNumber: 1,
		StoryFlags:  make(map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasCompleted reports whether the ledger already holds key
func (p *NarrativeProgress) HasCompleted(key string) bool {
	for _, k := range p.CompletedChoices {
		if k == key {
			return true
		}
	}
	return false
}

// MarkCompleted appends key to the ledger if new
func (p *NarrativeProgress) MarkCompleted(key string) {
	if !p.HasCompleted(key) {
		p.CompletedChoices = append(p.CompletedChoices, key)
	}
}

// VisitLocation records a location in the visited set (no duplicates)
func (p *NarrativeProgress) VisitLocation(locationID string) {
	for _, id := range p.VisitedLocations {
		if id == locationID {
			return
		}
	}
	p.VisitedLocations = append(p.VisitedLocations, locationID)
}

// MergeFlags overwrites story flags with the given set (shallow merge)
func (p *NarrativeProgress) MergeFlags(flags map[string]any) {
	if len(flags) == 0 {
		return
	}
	if p.StoryFlags == nil {
		p.StoryFlags = make(map[string]any)
	}
	for k, v := range flags {
		p.StoryFlags[k] = v
	}
}
