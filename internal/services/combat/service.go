package combat

import (
	"context"
	"log"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/dice"
	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/errors"
	"github.com/codequest-rpg/dungeon-engine/internal/locking"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/exploration"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/journal"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/sessions"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/wallets"
	charService "github.com/codequest-rpg/dungeon-engine/internal/services/character"
)

// TurnResult carries everything a client needs to render one combat round
type TurnResult struct {
	PlayerHealth   int  `json:"player_health"`
	PlayerMaxHP    int  `json:"player_max_health"`
	PlayerMana     int  `json:"player_mana"`
	EnemyHealth    int  `json:"enemy_health"`
	DamageDealt    int  `json:"damage_dealt"`
	HealedAmount   int  `json:"healed_amount"`
	DamageTaken    int  `json:"damage_taken"`
	IsCritical     bool `json:"is_critical"`
	IsDodged       bool `json:"is_dodged"`
	EnemyDefeated  bool `json:"enemy_defeated"`
	PlayerDefeated bool `json:"player_defeated"`
	TurnNumber     int  `json:"turn_number"`
}

// VictoryInput carries the tallies the client accumulated over the fight
type VictoryInput struct {
	UserID      string
	TurnsTaken  int
	DamageDealt int
	DamageTaken int
}

// CombatRewards is the payout of a won fight
type CombatRewards struct {
	Gold              int  `json:"gold"`
	XP                int  `json:"xp"`
	LevelsGained      int  `json:"levels_gained"`
	NewLevel          int  `json:"new_level"`
	StatPointsAwarded int  `json:"stat_points_awarded"`
	WasBoss           bool `json:"was_boss"`
}

// Service runs turn-based combat: session lifecycle, the per-turn state
// machine, and victory/defeat resolution.
type Service interface {
	// StartCombat begins a fight against a specific enemy
	StartCombat(ctx context.Context, userID, enemyID string) (*entities.CombatSession, error)

	// StartRandomCombat begins a fight against a spawn-weighted random
	// enemy of the player's current floor
	StartRandomCombat(ctx context.Context, userID string) (*entities.CombatSession, error)

	// StartBossCombat begins a fight against the boss of the player's
	// current floor
	StartBossCombat(ctx context.Context, userID string) (*entities.CombatSession, error)

	// CalculatePlayerDamage resolves the value of one ability use without
	// mutating any state
	CalculatePlayerDamage(ctx context.Context, userID string, ability *entities.Ability, challengeSuccess bool) (*DamageResult, error)

	// CalculateEnemyDamage resolves one enemy attack without mutating
	// any state
	CalculateEnemyDamage(ctx context.Context, userID string, enemyBaseDamage int) (*DamageResult, error)

	// ExecuteCombatTurn runs one full round: player action then enemy
	// counter-attack
	ExecuteCombatTurn(ctx context.Context, userID, abilityID string, challengeSuccess bool) (*TurnResult, error)

	// EndCombatVictory pays out a won fight and returns to exploration
	EndCombatVictory(ctx context.Context, input *VictoryInput) (*CombatRewards, error)

	// EndCombatDefeat applies the death penalty, restores the character
	// and returns to exploration
	EndCombatDefeat(ctx context.Context, userID string) error
}

// ServiceConfig holds the dependencies for the combat service
type ServiceConfig struct {
	CharacterService      charService.Service
	SessionRepository     sessions.Repository
	CatalogRepository     catalog.Repository
	ExplorationRepository exploration.Repository
	WalletRepository      wallets.Repository
	JournalRepository     journal.Repository
	Roller                dice.Roller
	Locker                *locking.UserLocker
}

type service struct {
	characterService charService.Service
	sessionRepo      sessions.Repository
	catalogRepo      catalog.Repository
	explorationRepo  exploration.Repository
	walletRepo       wallets.Repository
	journalRepo      journal.Repository
	roller           dice.Roller
	locker           *locking.UserLocker
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig is required")
	}
	if cfg.CharacterService == nil {
		panic("CharacterService is required")
	}
	if cfg.SessionRepository == nil {
		panic("SessionRepository is required")
	}
	if cfg.CatalogRepository == nil {
		panic("CatalogRepository is required")
	}
	if cfg.ExplorationRepository == nil {
		panic("ExplorationRepository is required")
	}
	if cfg.WalletRepository == nil {
		panic("WalletRepository is required")
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
		sessionRepo:      cfg.SessionRepository,
		catalogRepo:      cfg.CatalogRepository,
		explorationRepo:  cfg.ExplorationRepository,
		walletRepo:       cfg.WalletRepository,
		journalRepo:      cfg.JournalRepository,
		roller:           roller,
		locker:           locker,
	}
}

// StartCombat begins a fight against a specific enemy
func (s *service) StartCombat(ctx context.Context, userID, enemyID string) (*entities.CombatSession, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	enemy, err := s.catalogRepo.GetEnemy(ctx, enemyID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load enemy")
	}
	if enemy == nil {
		return nil, errors.NotFoundf("enemy %s not found", enemyID)
	}

	return s.beginSession(ctx, userID, &entities.CombatSession{
		UserID:             userID,
		EnemyID:            enemy.ID,
		EnemyName:          enemy.Name,
		EnemyCurrentHealth: enemy.BaseHealth,
		EnemyMaxHealth:     enemy.BaseHealth,
		EnemyDamage:        enemy.BaseDamage,
		EnemyDefense:       enemy.BaseDefense,
	})
}

// StartRandomCombat begins a fight against a spawn-weighted random enemy
// of the player's current floor
func (s *service) StartRandomCombat(ctx context.Context, userID string) (*entities.CombatSession, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	progress, err := s.explorationRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load dungeon progress")
	}

	enemies, err := s.catalogRepo.ListEnemiesByFloor(ctx, progress.CurrentFloor)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list enemies")
	}
	if len(enemies) == 0 {
		return nil, errors.NotFoundf("no enemies configured for floor %d", progress.CurrentFloor)
	}

	enemy, err := s.pickWeighted(enemies)
	if err != nil {
		return nil, err
	}

	return s.beginSession(ctx, userID, &entities.CombatSession{
		UserID:             userID,
		EnemyID:            enemy.ID,
		EnemyName:          enemy.Name,
		EnemyCurrentHealth: enemy.BaseHealth,
		EnemyMaxHealth:     enemy.BaseHealth,
		EnemyDamage:        enemy.BaseDamage,
		EnemyDefense:       enemy.BaseDefense,
	})
}

// pickWeighted selects an enemy with probability proportional to its spawn
// weight. Enemies with no weight count as weight 1.
func (s *service) pickWeighted(enemies []*entities.EnemyType) (*entities.EnemyType, error) {
	total := 0
	for _, enemy := range enemies {
		weight := enemy.SpawnWeight
		if weight < 1 {
			weight = 1
		}
		total += weight
	}

	result, err := s.roller.Roll(1, total, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll spawn")
	}

	draw := result.Rolls[0]
	for _, enemy := range enemies {
		weight := enemy.SpawnWeight
		if weight < 1 {
			weight = 1
		}
		draw -= weight
		if draw <= 0 {
			return enemy, nil
		}
	}
	return enemies[len(enemies)-1], nil
}

// StartBossCombat begins a fight against the boss of the player's current floor
func (s *service) StartBossCombat(ctx context.Context, userID string) (*entities.CombatSession, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	progress, err := s.explorationRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load dungeon progress")
	}

	boss, err := s.catalogRepo.GetBossForFloor(ctx, progress.CurrentFloor)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load boss")
	}
	if boss == nil {
		return nil, errors.NotFoundf("no boss configured for floor %d", progress.CurrentFloor)
	}

	return s.beginSession(ctx, userID, &entities.CombatSession{
		UserID:             userID,
		EnemyID:            boss.ID,
		EnemyName:          boss.Name,
		EnemyCurrentHealth: boss.Health,
		EnemyMaxHealth:     boss.Health,
		EnemyDamage:        boss.Damage,
		EnemyDefense:       boss.Defense,
		IsBoss:             true,
	})
}

// beginSession persists a fresh session and flips the exploration in_combat
// flag. Fails if the player is already fighting.
func (s *service) beginSession(ctx context.Context, userID string, session *entities.CombatSession) (*entities.CombatSession, error) {
	existing, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load combat session")
	}
	if existing != nil {
		return nil, errors.InvalidState("already in combat")
	}

	progress, err := s.explorationRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load dungeon progress")
	}

	session.AbilityCooldowns = make(map[string]int)
	session.StartedAt = time.Now().UTC()

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save combat session")
	}

	progress.EnterCombat(session.EnemyID, session.EnemyCurrentHealth)
	if err := s.explorationRepo.Update(ctx, progress); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save dungeon progress")
	}

	log.Printf("user %s entered combat with %s (%d hp)", userID, session.EnemyName, session.EnemyMaxHealth)
	return session, nil
}

// CalculatePlayerDamage resolves the value of one ability use without
// mutating any state
func (s *service) CalculatePlayerDamage(ctx context.Context, userID string, ability *entities.Ability, challengeSuccess bool) (*DamageResult, error) {
	if ability == nil {
		return nil, errors.InvalidArgument("ability is required")
	}

	stats, err := s.characterService.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return resolvePlayerDamage(stats, ability, challengeSuccess, s.roller)
}

// CalculateEnemyDamage resolves one enemy attack without mutating any state
func (s *service) CalculateEnemyDamage(ctx context.Context, userID string, enemyBaseDamage int) (*DamageResult, error) {
	stats, err := s.characterService.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return resolveEnemyDamage(stats, enemyBaseDamage, s.roller)
}

// ExecuteCombatTurn runs one full round. The mana and cooldown gates run
// before any mutation; a turn that kills the enemy skips the counter-attack
// entirely.
func (s *service) ExecuteCombatTurn(ctx context.Context, userID, abilityID string, challengeSuccess bool) (*TurnResult, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load combat session")
	}
	if session == nil {
		return nil, errors.InvalidState("not in combat")
	}

	stats, err := s.characterService.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	ability, err := s.catalogRepo.GetAbility(ctx, abilityID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load ability")
	}
	if ability == nil {
		return nil, errors.NotFoundf("ability %s not found", abilityID)
	}

	if stats.CurrentMana < ability.ManaCost {
		return nil, errors.InsufficientResourcef("not enough mana: need %d, have %d", ability.ManaCost, stats.CurrentMana)
	}
	if turns, on := session.OnCooldown(abilityID); on {
		return nil, errors.InvalidStatef("%s is on cooldown for %d more turns", ability.Name, turns)
	}

	playerResult, err := resolvePlayerDamage(stats, ability, challengeSuccess, s.roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve player damage")
	}

	healed := 0
	damageToEnemy := playerResult.Damage
	if ability.AbilityType == entities.AbilityTypeHeal {
		// A heal never also damages
		before := stats.CurrentHealth
		stats.Heal(playerResult.Damage)
		healed = stats.CurrentHealth - before
		damageToEnemy = 0
	}

	enemyDefeated := session.ApplyDamageToEnemy(damageToEnemy)
	stats.SpendMana(ability.ManaCost)

	damageTaken := 0
	dodged := false
	playerDefeated := false
	if !enemyDefeated {
		enemyResult, resolveErr := resolveEnemyDamage(stats, session.EnemyDamage, s.roller)
		if resolveErr != nil {
			return nil, errors.Wrap(resolveErr, "failed to resolve enemy damage")
		}
		damageTaken = enemyResult.Damage
		dodged = enemyResult.IsDodged
		stats.ApplyDamage(damageTaken)
		playerDefeated = stats.CurrentHealth <= 0
	}

	session.TickCooldowns()
	session.StartCooldown(abilityID, ability.CooldownTurns)
	session.CombatTurn++

	if err := s.characterService.UpdateStats(ctx, stats); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save combat session")
	}

	return &TurnResult{
		PlayerHealth:   stats.CurrentHealth,
		PlayerMaxHP:    stats.MaxHealth,
		PlayerMana:     stats.CurrentMana,
		EnemyHealth:    session.EnemyCurrentHealth,
		DamageDealt:    damageToEnemy,
		HealedAmount:   healed,
		DamageTaken:    damageTaken,
		IsCritical:     playerResult.IsCritical,
		IsDodged:       dodged,
		EnemyDefeated:  enemyDefeated,
		PlayerDefeated: playerDefeated,
		TurnNumber:     session.CombatTurn,
	}, nil
}

// EndCombatVictory pays out a won fight: uniform gold in the enemy's drop
// range, XP through the leveling curve, totals, an audit row, and the
// return to exploration.
func (s *service) EndCombatVictory(ctx context.Context, input *VictoryInput) (*CombatRewards, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("victory input with user ID is required")
	}

	unlock := s.locker.Lock(input.UserID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, input.UserID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load combat session")
	}
	if session == nil {
		return nil, errors.InvalidState("not in combat")
	}
	if session.EnemyCurrentHealth > 0 {
		return nil, errors.InvalidStatef("%s still has %d health", session.EnemyName, session.EnemyCurrentHealth)
	}

	progress, err := s.explorationRepo.GetOrCreate(ctx, input.UserID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load dungeon progress")
	}

	gold, xp, err := s.rollRewards(ctx, session, progress.CurrentFloor)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetOrCreate(ctx, input.UserID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load wallet")
	}
	wallet.Credit(gold)
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save wallet")
	}

	levelUp, err := s.characterService.AwardXP(ctx, input.UserID, xp)
	if err != nil {
		return nil, err
	}

	if session.IsBoss {
		progress.TotalBossesDefeated++
	} else {
		progress.TotalEnemiesDefeated++
	}
	progress.TotalGoldEarned += gold
	progress.TotalXPEarned += xp
	progress.LeaveCombat()
	if err := s.explorationRepo.Update(ctx, progress); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save dungeon progress")
	}

	entry := &entities.CombatLogEntry{
		UserID:      input.UserID,
		EnemyID:     session.EnemyID,
		EnemyName:   session.EnemyName,
		FloorNumber: progress.CurrentFloor,
		IsBoss:      session.IsBoss,
		Victory:     true,
		TurnsTaken:  input.TurnsTaken,
		DamageDealt: input.DamageDealt,
		DamageTaken: input.DamageTaken,
		XPGained:    xp,
		GoldGained:  gold,
	}
	if err := s.journalRepo.AppendCombatLog(ctx, entry); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to append combat log")
	}

	if err := s.sessionRepo.Delete(ctx, input.UserID); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear combat session")
	}

	log.Printf("user %s defeated %s: +%d gold, +%d xp", input.UserID, session.EnemyName, gold, xp)

	return &CombatRewards{
		Gold:              gold,
		XP:                xp,
		LevelsGained:      levelUp.LevelsGained,
		NewLevel:          levelUp.Stats.Level,
		StatPointsAwarded: levelUp.StatPointsAwarded,
		WasBoss:           session.IsBoss,
	}, nil
}

// rollRewards resolves the gold and XP payout from the catalog row the
// session was started from. Regular enemies draw gold uniformly from their
// drop range; bosses pay a fixed amount.
func (s *service) rollRewards(ctx context.Context, session *entities.CombatSession, floorNumber int) (gold, xp int, err error) {
	if session.IsBoss {
		boss, bossErr := s.catalogRepo.GetBossForFloor(ctx, floorNumber)
		if bossErr != nil {
			return 0, 0, errors.WrapWithCode(bossErr, errors.CodeUnavailable, "failed to load boss")
		}
		if boss == nil {
			return 0, 0, errors.NotFoundf("no boss configured for floor %d", floorNumber)
		}
		return boss.GoldReward, boss.XPReward, nil
	}

	enemy, enemyErr := s.catalogRepo.GetEnemy(ctx, session.EnemyID)
	if enemyErr != nil {
		return 0, 0, errors.WrapWithCode(enemyErr, errors.CodeUnavailable, "failed to load enemy")
	}
	if enemy == nil {
		return 0, 0, errors.NotFoundf("enemy %s not found", session.EnemyID)
	}

	gold = enemy.GoldDropMin
	if spread := enemy.GoldDropMax - enemy.GoldDropMin; spread > 0 {
		result, rollErr := s.roller.Roll(1, spread+1, enemy.GoldDropMin-1)
		if rollErr != nil {
			return 0, 0, errors.Wrap(rollErr, "failed to roll gold drop")
		}
		gold = result.Total
	}
	return gold, enemy.XPReward, nil
}

// EndCombatDefeat applies the 10 percent gold penalty, counts the death,
// fully restores the character and returns to exploration. Defeat is a
// respawn, not a hard failure.
func (s *service) EndCombatDefeat(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.InvalidArgument("user ID is required")
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load combat session")
	}
	if session == nil {
		return errors.InvalidState("not in combat")
	}

	wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load wallet")
	}
	penalty := wallet.Gold / 10
	wallet.Debit(penalty)
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save wallet")
	}

	if _, err := s.characterService.Restore(ctx, userID); err != nil {
		return err
	}

	progress, err := s.explorationRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load dungeon progress")
	}
	progress.TotalDeaths++
	progress.LeaveCombat()
	if err := s.explorationRepo.Update(ctx, progress); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save dungeon progress")
	}

	entry := &entities.CombatLogEntry{
		UserID:      userID,
		EnemyID:     session.EnemyID,
		EnemyName:   session.EnemyName,
		FloorNumber: progress.CurrentFloor,
		IsBoss:      session.IsBoss,
		Victory:     false,
		TurnsTaken:  session.CombatTurn,
	}
	if err := s.journalRepo.AppendCombatLog(ctx, entry); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to append combat log")
	}

	if err := s.sessionRepo.Delete(ctx, userID); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear combat session")
	}

	log.Printf("user %s was defeated by %s: -%d gold", userID, session.EnemyName, penalty)
	return nil
}
