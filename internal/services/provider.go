package services

import (
	"github.com/redis/go-redis/v9"

	"github.com/codequest-rpg/dungeon-engine/internal/dice"
	"github.com/codequest-rpg/dungeon-engine/internal/locking"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/characters"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/exploration"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/inventory"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/journal"
	narrativeRepo "github.com/codequest-rpg/dungeon-engine/internal/repositories/narrative"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/sessions"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/wallets"
	"github.com/codequest-rpg/dungeon-engine/internal/services/character"
	"github.com/codequest-rpg/dungeon-engine/internal/services/combat"
	"github.com/codequest-rpg/dungeon-engine/internal/services/narrative"
)

// Provider bundles all engine services behind one constructor
type Provider struct {
	Characters character.Service
	Combat     combat.Service
	Narrative  narrative.Service
	Catalog    catalog.Repository
	Journal    journal.Repository
}

// ProviderConfig holds the external dependencies. A nil RedisClient falls
// back to in-memory repositories, matching how the engine runs without a
// reachable store.
type ProviderConfig struct {
	RedisClient *redis.Client
	Roller      dice.Roller
}

// NewProvider wires repositories and services together
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	var (
		characterRepo   characters.Repository
		walletRepo      wallets.Repository
		catalogRepo     catalog.Repository
		sessionRepo     sessions.Repository
		explorationRepo exploration.Repository
		narrativeRepos  narrativeRepo.Repository
		journalRepo     journal.Repository
		inventoryRepo   inventory.Repository
	)

	if cfg.RedisClient != nil {
		characterRepo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: cfg.RedisClient})
		walletRepo = wallets.NewRedisRepository(&wallets.RedisRepoConfig{Client: cfg.RedisClient})
		catalogRepo = catalog.NewRedisRepository(&catalog.RedisRepoConfig{Client: cfg.RedisClient})
		sessionRepo = sessions.NewRedisRepository(&sessions.RedisRepoConfig{Client: cfg.RedisClient})
		explorationRepo = exploration.NewRedisRepository(&exploration.RedisRepoConfig{Client: cfg.RedisClient})
		narrativeRepos = narrativeRepo.NewRedisRepository(&narrativeRepo.RedisRepoConfig{Client: cfg.RedisClient})
		journalRepo = journal.NewRedisRepository(&journal.RedisRepoConfig{Client: cfg.RedisClient})
		inventoryRepo = inventory.NewRedisRepository(&inventory.RedisRepoConfig{Client: cfg.RedisClient})
	} else {
		characterRepo = characters.NewInMemoryRepository()
		walletRepo = wallets.NewInMemoryRepository()
		catalogRepo = catalog.NewInMemoryRepository()
		sessionRepo = sessions.NewInMemoryRepository()
		explorationRepo = exploration.NewInMemoryRepository()
		narrativeRepos = narrativeRepo.NewInMemoryRepository()
		journalRepo = journal.NewInMemoryRepository()
		inventoryRepo = inventory.NewInMemoryRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	locker := locking.NewUserLocker()

	characterService := character.NewService(&character.ServiceConfig{
		CharacterRepository: characterRepo,
		CatalogRepository:   catalogRepo,
	})

	combatService := combat.NewService(&combat.ServiceConfig{
		CharacterService:      characterService,
		SessionRepository:     sessionRepo,
		CatalogRepository:     catalogRepo,
		ExplorationRepository: explorationRepo,
		WalletRepository:      walletRepo,
		JournalRepository:     journalRepo,
		Roller:                roller,
		Locker:                locker,
	})

	narrativeService := narrative.NewService(&narrative.ServiceConfig{
		CharacterService:    characterService,
		NarrativeRepository: narrativeRepos,
		CatalogRepository:   catalogRepo,
		WalletRepository:    walletRepo,
		InventoryRepository: inventoryRepo,
		JournalRepository:   journalRepo,
		Roller:              roller,
		Locker:              locker,
	})

	return &Provider{
		Characters: characterService,
		Combat:     combatService,
		Narrative:  narrativeService,
		Catalog:    catalogRepo,
		Journal:    journalRepo,
	}
}
