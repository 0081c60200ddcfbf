package exploration

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

func (s *RedisRepositorySuite) TestGetOrCreateReturnsExisting() {
	stored := entities.NewDungeonProgress("user-123")
	stored.CurrentFloor = 3
	stored.TotalDeaths = 2
	data, err := json.Marshal(stored)
	s.Require().NoError(err)

	s.mock.ExpectGet("dungeon:user-123").SetVal(string(data))

	progress, err := s.repo.GetOrCreate(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Equal(3, progress.CurrentFloor)
	s.Equal(2, progress.TotalDeaths)
}

func (s *RedisRepositorySuite) TestGetOrCreateWritesFloorOneDefaults() {
	s.mock.ExpectGet("dungeon:user-123").RedisNil()
	s.mock.Regexp().ExpectSetNX("dungeon:user-123", `"user_id":"user-123"`, 0).SetVal(true)

	progress, err := s.repo.GetOrCreate(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Equal(1, progress.CurrentFloor)
	s.Equal(1, progress.DeepestFloorReached)
	s.False(progress.InCombat)
}

func (s *RedisRepositorySuite) TestUpdate() {
	progress := entities.NewDungeonProgress("user-123")
	progress.EnterCombat("slime", 40)

	s.mock.Regexp().ExpectSet("dungeon:user-123", `"in_combat":true`, 0).SetVal("OK")

	s.NoError(s.repo.Update(s.ctx, progress))
}

func (s *RedisRepositorySuite) TestUpdateRequiresUserID() {
	s.Error(s.repo.Update(s.ctx, &entities.DungeonProgress{}))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositorySuite))
}
