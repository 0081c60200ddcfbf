package mockdice

import (
	"fmt"
	"sync"

	"github.com/codequest-rpg/dungeon-engine/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined
// results. Die rolls and chance draws are queued separately.
type ManualMockRoller struct {
	mu          sync.Mutex
	rolls       []int
	rollIndex   int
	chances     []bool
	chanceIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetRolls sets the queued die results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetChances sets the queued chance-draw outcomes
func (m *ManualMockRoller) SetChances(chances []bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chances = chances
	m.chanceIndex = 0
}

// Reset clears all queued results
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = nil
	m.rollIndex = 0
	m.chances = nil
	m.chanceIndex = 0
}

func (m *ManualMockRoller) nextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	rawTotal := 0

	for i := 0; i < count; i++ {
		roll, err := m.nextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	result := &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// Chance implements dice.Roller.Chance
func (m *ManualMockRoller) Chance(p float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.chanceIndex >= len(m.chances) {
		return false, fmt.Errorf("no more predetermined chance draws available (used %d of %d)", m.chanceIndex, len(m.chances))
	}

	outcome := m.chances[m.chanceIndex]
	m.chanceIndex++
	return outcome, nil
}
