package narrative

import (
	"context"
	"log"

	"github.com/codequest-rpg/dungeon-engine/internal/dice"
	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/errors"
	"github.com/codequest-rpg/dungeon-engine/internal/locking"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/inventory"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/journal"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/narrative"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/wallets"
	charService "github.com/codequest-rpg/dungeon-engine/internal/services/character"
)

// SkillCheckInput is one narrative dice check request. ChallengeSuccess is
// the outcome of the external tutoring challenge, accepted as an opaque
// boolean.
type SkillCheckInput struct {
	UserID           string
	ChoiceID         string
	DiceRoll         int
	StatModifier     int
	ChallengeSuccess bool
}

// SkillCheckResult is the fully resolved check
type SkillCheckResult struct {
	DiceRoll         int                         `json:"dice_roll"`
	StatModifier     int                         `json:"stat_modifier"`
	ChallengeSuccess bool                        `json:"challenge_success"`
	AppliedModifier  int                         `json:"applied_modifier"`
	TotalRoll        int                         `json:"total_roll"`
	DC               int                         `json:"dc"`
	CheckPassed      bool                        `json:"check_passed"`
	OutcomeType      entities.OutcomeType        `json:"outcome_type"`
	Outcome          *entities.NarrativeOutcome  `json:"outcome"`
	Progress         *entities.NarrativeProgress `json:"progress"`
}

// defaultSkillDC applies when a choice declares a check but no DC
const defaultSkillDC = 10

// Service resolves narrative traversal: dice checks, outcome selection,
// and the one-time-reward applier every progression path flows through.
type Service interface {
	// GetProgress loads narrative progress, creating floor 1 state on
	// first access
	GetProgress(ctx context.Context, userID string) (*entities.NarrativeProgress, error)

	// StartFloor moves the player to a floor's start location
	StartFloor(ctx context.Context, userID string, floorNumber int) (*entities.NarrativeProgress, error)

	// GetLocationChoices lists a location's choices, hiding those whose
	// required flags the player does not carry
	GetLocationChoices(ctx context.Context, userID, locationID string) ([]*entities.NarrativeChoice, error)

	// RollD20 rolls the narrative die, uniform 1 through 20
	RollD20(ctx context.Context) (int, error)

	// ResolveSkillCheck resolves one dice check and applies its outcome
	ResolveSkillCheck(ctx context.Context, input *SkillCheckInput) (*SkillCheckResult, error)

	// ApplyOutcome applies an outcome: location/flag updates every time,
	// rewards only on the first completion, penalties always
	ApplyOutcome(ctx context.Context, userID string, outcome *entities.NarrativeOutcome) (*entities.NarrativeProgress, error)

	// MakeSimpleChoice resolves a choice with no skill check through its
	// default outcome
	MakeSimpleChoice(ctx context.Context, userID, choiceID string) (*entities.NarrativeOutcome, *entities.NarrativeProgress, error)

	// GetOutcomeByType applies an explicitly named outcome of a choice
	GetOutcomeByType(ctx context.Context, userID, choiceID string, outcomeType entities.OutcomeType) (*entities.NarrativeOutcome, *entities.NarrativeProgress, error)
}

// ServiceConfig holds the dependencies for the narrative service
type ServiceConfig struct {
	CharacterService    charService.Service
	NarrativeRepository narrative.Repository
	CatalogRepository   catalog.Repository
	WalletRepository    wallets.Repository
	InventoryRepository inventory.Repository
	JournalRepository   journal.Repository
	Roller              dice.Roller
	Locker              *locking.UserLocker
}

type service struct {
	characterService charService.Service
	narrativeRepo    narrative.Repository
	catalogRepo      catalog.Repository
	walletRepo       wallets.Repository
	inventoryRepo    inventory.Repository
	journalRepo      journal.Repository
	roller           dice.Roller
	locker           *locking.UserLocker
}

// NewService creates a new narrative service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig is required")
	}
	if cfg.CharacterService == nil {
		panic("CharacterService is required")
	}
	if cfg.NarrativeRepository == nil {
		panic("NarrativeRepository is required")
	}
	if cfg.CatalogRepository == nil {
		panic("CatalogRepository is required")
	}
	if cfg.WalletRepository == nil {
		panic("WalletRepository is required")
	}
	if cfg.InventoryRepository == nil {
		panic("InventoryRepository is required")
	}
	if cfg.JournalRepository == nil {
		panic("JournalRepository is required")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	locker := cfg.Locker
	if locker == nil {
		locker = locking.NewUserLocker()
	}

	return &service{
		characterService: cfg.CharacterService,
		narrativeRepo:    cfg.NarrativeRepository,
		catalogRepo:      cfg.CatalogRepository,
		walletRepo:       cfg.WalletRepository,
		inventoryRepo:    cfg.InventoryRepository,
		journalRepo:      cfg.JournalRepository,
		roller:           roller,
		locker:           locker,
	}
}

// GetProgress loads narrative progress, creating floor 1 state on first access
func (s *service) GetProgress(ctx context.Context, userID string) (*entities.NarrativeProgress, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	progress, err := s.narrativeRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load narrative progress")
	}
	return progress, nil
}

// StartFloor moves the player to a floor's start location
func (s *service) StartFloor(ctx context.Context, userID string, floorNumber int) (*entities.NarrativeProgress, error) {
	if floorNumber < 1 {
		return nil, errors.InvalidArgumentf("floor number must be positive, got %d", floorNumber)
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	start, err := s.catalogRepo.GetStartLocation(ctx, floorNumber)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load start location")
	}
	if start == nil {
		return nil, errors.NotFoundf("no start location configured for floor %d", floorNumber)
	}

	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress.FloorNumber = floorNumber
	progress.CurrentLocationID = start.ID
	progress.VisitLocation(start.ID)

	if err := s.narrativeRepo.Update(ctx, progress); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save narrative progress")
	}
	return progress, nil
}

// GetLocationChoices lists a location's choices in display order, hiding
// any whose required flags the player does not carry. The gate is a
// conjunction: every required key must be present with an equal value.
func (s *service) GetLocationChoices(ctx context.Context, userID, locationID string) ([]*entities.NarrativeChoice, error) {
	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	choices, err := s.catalogRepo.ListChoicesForLocation(ctx, locationID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list choices")
	}

	visible := make([]*entities.NarrativeChoice, 0, len(choices))
	for _, choice := range choices {
		if choice.VisibleWith(progress.StoryFlags) {
			visible = append(visible, choice)
		}
	}
	return visible, nil
}

// RollD20 rolls the narrative die, uniform 1 through 20
func (s *service) RollD20(ctx context.Context) (int, error) {
	roll, err := dice.D20(s.roller)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll d20")
	}
	return roll, nil
}

// ResolveSkillCheck resolves one dice check. The stat modifier only counts
// when the embedded challenge was solved; a natural 20 always crits and a
// natural 1 always fumbles regardless of the total.
func (s *service) ResolveSkillCheck(ctx context.Context, input *SkillCheckInput) (*SkillCheckResult, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("skill check input with user ID is required")
	}
	if input.DiceRoll < 1 || input.DiceRoll > 20 {
		return nil, errors.InvalidArgumentf("dice roll must be 1-20, got %d", input.DiceRoll)
	}

	choice, err := s.catalogRepo.GetChoice(ctx, input.ChoiceID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load choice")
	}
	if choice == nil {
		return nil, errors.NotFoundf("choice %s not found", input.ChoiceID)
	}

	dc := choice.SkillDC
	if dc <= 0 {
		dc = defaultSkillDC
	}

	appliedModifier := 0
	if input.ChallengeSuccess {
		appliedModifier = input.StatModifier
	}
	totalRoll := input.DiceRoll + appliedModifier
	checkPassed := totalRoll >= dc

	var outcomeType entities.OutcomeType
	switch {
	case input.DiceRoll == 20:
		outcomeType = entities.OutcomeCriticalSuccess
	case input.DiceRoll == 1:
		outcomeType = entities.OutcomeCriticalFailure
	case checkPassed:
		outcomeType = entities.OutcomeSuccess
	default:
		outcomeType = entities.OutcomeFailure
	}

	outcome, err := s.lookupOutcome(ctx, input.ChoiceID, outcomeType, checkPassed)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(input.UserID)
	defer unlock()

	progress, err := s.GetProgress(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	progress.LastRoll = input.DiceRoll
	progress.LastSkillType = choice.SkillType
	progress.LastSkillDC = dc
	progress.LastModifier = appliedModifier
	progress.LastChallengeSuccess = input.ChallengeSuccess
	progress.TotalSkillChecks++
	if checkPassed {
		progress.SuccessfulSkillChecks++
	}

	progress, err = s.applyOutcomeLocked(ctx, input.UserID, outcome, progress)
	if err != nil {
		return nil, err
	}

	record := &entities.SkillCheckRecord{
		UserID:           input.UserID,
		ChoiceID:         input.ChoiceID,
		SkillType:        choice.SkillType,
		SkillDC:          dc,
		DiceRoll:         input.DiceRoll,
		StatModifier:     input.StatModifier,
		ChallengeSuccess: input.ChallengeSuccess,
		TotalRoll:        totalRoll,
		CheckPassed:      checkPassed,
		OutcomeType:      outcomeType,
	}
	if err := s.journalRepo.AppendSkillCheck(ctx, record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to append skill check history")
	}

	return &SkillCheckResult{
		DiceRoll:         input.DiceRoll,
		StatModifier:     input.StatModifier,
		ChallengeSuccess: input.ChallengeSuccess,
		AppliedModifier:  appliedModifier,
		TotalRoll:        totalRoll,
		DC:               dc,
		CheckPassed:      checkPassed,
		OutcomeType:      outcomeType,
		Outcome:          outcome,
		Progress:         progress,
	}, nil
}

// lookupOutcome fetches the outcome row for the resolved type. When the
// critical variant is not authored the coarse row is picked by whether the
// total beat the DC, not by the critical family, so a natural 20 whose
// total still fails the DC falls back to the failure row. Missing even the
// fallback is a content bug.
func (s *service) lookupOutcome(ctx context.Context, choiceID string, outcomeType entities.OutcomeType, checkPassed bool) (*entities.NarrativeOutcome, error) {
	outcome, err := s.catalogRepo.GetOutcome(ctx, choiceID, outcomeType)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load outcome")
	}
	if outcome != nil {
		return outcome, nil
	}

	if outcomeType != entities.OutcomeCriticalSuccess && outcomeType != entities.OutcomeCriticalFailure {
		return nil, errors.NotFoundf("no %s outcome for choice %s", outcomeType, choiceID)
	}

	fallback := entities.OutcomeFailure
	if checkPassed {
		fallback = entities.OutcomeSuccess
	}

	outcome, err = s.catalogRepo.GetOutcome(ctx, choiceID, fallback)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load outcome")
	}
	if outcome == nil {
		return nil, errors.NotFoundf("no %s or %s outcome for choice %s", outcomeType, fallback, choiceID)
	}
	return outcome, nil
}

// ApplyOutcome applies an outcome under the per-user lock
func (s *service) ApplyOutcome(ctx context.Context, userID string, outcome *entities.NarrativeOutcome) (*entities.NarrativeProgress, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}
	if outcome == nil {
		return nil, errors.InvalidArgument("outcome is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.applyOutcomeLocked(ctx, userID, outcome, progress)
}

// applyOutcomeLocked is the single reward-application routine every
// progression path flows through. The caller holds the user lock.
// Location and flag updates happen on every application; rewards only on
// the first completion of the (choice, type) pair; penalties always.
func (s *service) applyOutcomeLocked(ctx context.Context, userID string, outcome *entities.NarrativeOutcome, progress *entities.NarrativeProgress) (*entities.NarrativeProgress, error) {
	key := outcome.CompletionKey()
	firstTime := !progress.HasCompleted(key)

	if outcome.NextLocationID != "" {
		progress.CurrentLocationID = outcome.NextLocationID
		progress.VisitLocation(outcome.NextLocationID)
		progress.MergeFlags(outcome.SetsFlags)
	}
	if firstTime {
		progress.MarkCompleted(key)
	}

	if firstTime && outcome.Rewards != nil {
		if err := s.applyRewards(ctx, userID, outcome.Rewards); err != nil {
			return nil, err
		}
		log.Printf("user %s completed %s: rewards applied", userID, key)
	}

	if outcome.Penalties != nil {
		if err := s.applyPenalties(ctx, userID, outcome.Penalties); err != nil {
			return nil, err
		}
	}

	if err := s.narrativeRepo.Update(ctx, progress); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save narrative progress")
	}
	return progress, nil
}

func (s *service) applyRewards(ctx context.Context, userID string, rewards *entities.OutcomeRewards) error {
	if rewards.Gold > 0 {
		wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load wallet")
		}
		wallet.Credit(rewards.Gold)
		if err := s.walletRepo.Update(ctx, wallet); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save wallet")
		}
	}

	if rewards.XP > 0 {
		if _, err := s.characterService.AwardXP(ctx, userID, rewards.XP); err != nil {
			return err
		}
	}

	if rewards.Heal != nil {
		stats, err := s.characterService.GetOrCreateStats(ctx, userID)
		if err != nil {
			return err
		}
		if rewards.Heal.Full {
			stats.CurrentHealth = stats.MaxHealth
		} else {
			stats.Heal(rewards.Heal.Amount)
		}
		if err := s.characterService.UpdateStats(ctx, stats); err != nil {
			return err
		}
	}

	for _, itemID := range rewards.Items {
		if err := s.grantItem(ctx, userID, itemID); err != nil {
			return err
		}
	}
	return nil
}

// grantItem resolves an item reward against the consumable catalog first,
// then equipment. Ids matching neither are silently ignored.
func (s *service) grantItem(ctx context.Context, userID, itemID string) error {
	consumable, err := s.catalogRepo.GetConsumable(ctx, itemID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load consumable")
	}
	if consumable != nil {
		return s.inventoryRepo.AddConsumable(ctx, userID, itemID, 1)
	}

	equipment, err := s.catalogRepo.GetEquipment(ctx, itemID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load equipment")
	}
	if equipment != nil {
		return s.inventoryRepo.AddEquipment(ctx, userID, itemID, 1)
	}

	log.Printf("ignoring unknown item reward %s for user %s", itemID, userID)
	return nil
}

func (s *service) applyPenalties(ctx context.Context, userID string, penalties *entities.OutcomePenalties) error {
	if penalties.Damage > 0 {
		stats, err := s.characterService.GetOrCreateStats(ctx, userID)
		if err != nil {
			return err
		}
		stats.ApplyDamage(penalties.Damage)
		if err := s.characterService.UpdateStats(ctx, stats); err != nil {
			return err
		}
	}

	if penalties.Gold > 0 {
		wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load wallet")
		}
		wallet.Debit(penalties.Gold)
		if err := s.walletRepo.Update(ctx, wallet); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save wallet")
		}
	}
	return nil
}

// MakeSimpleChoice resolves a choice with no skill check through its
// default outcome
func (s *service) MakeSimpleChoice(ctx context.Context, userID, choiceID string) (*entities.NarrativeOutcome, *entities.NarrativeProgress, error) {
	return s.GetOutcomeByType(ctx, userID, choiceID, entities.OutcomeDefault)
}

// GetOutcomeByType applies an explicitly named outcome of a choice through
// the same applier as skill checks
func (s *service) GetOutcomeByType(ctx context.Context, userID, choiceID string, outcomeType entities.OutcomeType) (*entities.NarrativeOutcome, *entities.NarrativeProgress, error) {
	if userID == "" {
		return nil, nil, errors.InvalidArgument("user ID is required")
	}

	choice, err := s.catalogRepo.GetChoice(ctx, choiceID)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load choice")
	}
	if choice == nil {
		return nil, nil, errors.NotFoundf("choice %s not found", choiceID)
	}

	outcome, err := s.catalogRepo.GetOutcome(ctx, choiceID, outcomeType)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load outcome")
	}
	if outcome == nil {
		return nil, nil, errors.NotFoundf("no %s outcome for choice %s", outcomeType, choiceID)
	}

	progress, err := s.ApplyOutcome(ctx, userID, outcome)
	if err != nil {
		return nil, nil, err
	}
	return outcome, progress, nil
}
