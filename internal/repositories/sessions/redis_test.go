package sessions

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

type RedisRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: client})
}

func (s *RedisRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RedisRepositorySuite) TestGetReturnsNilWhenAbsent() {
	s.mock.ExpectGet("combat:user-123").RedisNil()

	session, err := s.repo.Get(s.ctx, "user-123")
	s.NoError(err)
	s.Nil(session)
}

func (s *RedisRepositorySuite) TestGetUnmarshalsStoredSession() {
	stored := &entities.CombatSession{
		UserID:             "user-123",
		EnemyID:            "slime",
		EnemyCurrentHealth: 28,
		AbilityCooldowns:   map[string]int{"heavy_blow": 1},
	}
	data, err := json.Marshal(stored)
	s.Require().NoError(err)

	s.mock.ExpectGet("combat:user-123").SetVal(string(data))

	session, err := s.repo.Get(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Equal("slime", session.EnemyID)
	s.Equal(28, session.EnemyCurrentHealth)
	s.Equal(1, session.AbilityCooldowns["heavy_blow"])
}

func (s *RedisRepositorySuite) TestSave() {
	session := &entities.CombatSession{
		UserID:  "user-123",
		EnemyID: "slime",
	}

	s.mock.Regexp().ExpectSet("combat:user-123", `"enemy_id":"slime"`, 0).SetVal("OK")

	s.NoError(s.repo.Save(s.ctx, session))
}

func (s *RedisRepositorySuite) TestSaveRequiresUserID() {
	s.Error(s.repo.Save(s.ctx, &entities.CombatSession{}))
}

func (s *RedisRepositorySuite) TestDelete() {
	s.mock.ExpectDel("combat:user-123").SetVal(1)

	s.NoError(s.repo.Delete(s.ctx, "user-123"))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositorySuite))
}
