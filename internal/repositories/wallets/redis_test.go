package wallets

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
	stored := entities.NewWallet("user-123")
	stored.Credit(42)
	data, err := json.Marshal(stored)
	s.Require().NoError(err)

	s.mock.ExpectGet("wallet:user-123").SetVal(string(data))

	wallet, err := s.repo.GetOrCreate(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Equal(42, wallet.Gold)
	s.Equal(42, wallet.LifetimeEarned)
}

func (s *RedisRepositorySuite) TestGetOrCreateWritesEmptyWallet() {
	s.mock.ExpectGet("wallet:user-123").RedisNil()
	s.mock.Regexp().ExpectSetNX("wallet:user-123", `"user_id":"user-123"`, 0).SetVal(true)

	wallet, err := s.repo.GetOrCreate(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Equal(0, wallet.Gold)
	s.Equal(0, wallet.LifetimeEarned)
}

func (s *RedisRepositorySuite) TestGetOrCreateLosesRace() {
	winner := entities.NewWallet("user-123")
	winner.Credit(7)
	data, err := json.Marshal(winner)
	s.Require().NoError(err)

	s.mock.ExpectGet("wallet:user-123").RedisNil()
	s.mock.Regexp().ExpectSetNX("wallet:user-123", `"user_id":"user-123"`, 0).SetVal(false)
	s.mock.ExpectGet("wallet:user-123").SetVal(string(data))

	wallet, err := s.repo.GetOrCreate(s.ctx, "user-123")
	s.Require().NoError(err)
	s.Equal(7, wallet.Gold)
}

func (s *RedisRepositorySuite) TestUpdate() {
	wallet := entities.NewWallet("user-123")
	wallet.Credit(10)

	s.mock.Regexp().ExpectSet("wallet:user-123", `"gold":10`, 0).SetVal("OK")

	s.NoError(s.repo.Update(s.ctx, wallet))
}

func (s *RedisRepositorySuite) TestUpdateRequiresUserID() {
	s.Error(s.repo.Update(s.ctx, &entities.Wallet{}))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositorySuite))
}
