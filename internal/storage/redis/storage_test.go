package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newAccount(id model.AccountID, username string) *model.Account {
	return model.NewAccount(id, username, "hash123", model.RolePermanent, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func (s *StorageSuite) TestSaveAndLoadAccount() {
	a := s.newAccount("1", "alice")
	a.Role = model.RoleTemporary
	a.Friends.Add("2")
	a.PendingFriends.Add("3")
	a.OwnedResources.Add("game-7")

	s.Require().NoError(s.storage.SaveAccount(s.ctx, a))

	accounts, err := s.storage.LoadAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 1)

	got := accounts[0]
	s.Equal(a.ID, got.ID)
	s.Equal("alice", got.Username)
	s.Equal("hash123", got.PasswordHash)
	s.Equal(model.RoleTemporary, got.Role)
	s.True(a.RegisteredAt.Equal(got.RegisteredAt))
	s.True(got.Friends.Has("2"))
	s.True(got.PendingFriends.Has("3"))
	s.True(got.OwnedResources.Has("game-7"))
}

func (s *StorageSuite) TestLoadAllAccountsEmpty() {
	accounts, err := s.storage.LoadAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *StorageSuite) TestLoadAllAccountsSortedByID() {
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("3", "carol"))
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("1", "alice"))
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("2", "bob"))

	accounts, err := s.storage.LoadAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 3)
	s.Equal([]model.AccountID{"1", "2", "3"}, []model.AccountID{accounts[0].ID, accounts[1].ID, accounts[2].ID})
}

func (s *StorageSuite) TestSaveIsUpsert() {
	a := s.newAccount("1", "alice")
	_ = s.storage.SaveAccount(s.ctx, a)
	a.Username = "alicia"
	s.Require().NoError(s.storage.SaveAccount(s.ctx, a))

	count, err := s.storage.LoadAccountCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)

	accounts, _ := s.storage.LoadAllAccounts(s.ctx)
	s.Equal("alicia", accounts[0].Username)
}

func (s *StorageSuite) TestDeleteAccount() {
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("1", "alice"))
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("2", "bob"))

	s.Require().NoError(s.storage.DeleteAccount(s.ctx, "1"))

	s.False(s.mini.Exists(s.storage.accountKey("1")))
	count, _ := s.storage.LoadAccountCount(s.ctx)
	s.Equal(1, count)
}

func (s *StorageSuite) TestDeleteMissingAccountIsNoop() {
	s.NoError(s.storage.DeleteAccount(s.ctx, "404"))
}

func (s *StorageSuite) TestLoadSkipsDanglingIndexEntries() {
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("1", "alice"))
	s.mini.Del(s.storage.accountKey("1"))

	accounts, err := s.storage.LoadAllAccounts(s.ctx)
	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *StorageSuite) TestAccountsHaveNoTTL() {
	_ = s.storage.SaveAccount(s.ctx, s.newAccount("1", "alice"))

	s.Equal(time.Duration(0), s.mini.TTL(s.storage.accountKey("1")))
}

func (s *StorageSuite) TestSaveFailsWhenServerDown() {
	s.mini.Close()

	err := s.storage.SaveAccount(s.ctx, s.newAccount("1", "alice"))
	s.Error(err)
}
