package accounts

import "github.com/mcoot/quizgame-accounts/internal/model"

func (s *ManagerSuite) TestSendFriendRequestAddsPending() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)

	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))

	pending, err := s.manager.PendingFriends(bob)
	s.Require().NoError(err)
	s.Equal([]model.AccountID{alice}, pending)

	// The sender's own sets are untouched
	sent, _ := s.manager.PendingFriends(alice)
	s.Empty(sent)

	stored, _ := s.memory.GetAccount(bob)
	s.True(stored.PendingFriends.Has(alice))
}

func (s *ManagerSuite) TestSendFriendRequestTwiceIsAbsorbed() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)

	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))
	saves := len(s.store.Saved())
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))

	pending, _ := s.manager.PendingFriends(bob)
	s.Equal([]model.AccountID{alice}, pending)
	s.Len(s.store.Saved(), saves)
}

func (s *ManagerSuite) TestSendFriendRequestToFriendIsAbsorbed() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, bob, alice))

	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))

	pending, _ := s.manager.PendingFriends(bob)
	s.Empty(pending)
}

func (s *ManagerSuite) TestSendFriendRequestToSelf() {
	alice := s.create("alice", model.RolePermanent)

	err := s.manager.SendFriendRequest(s.ctx, alice, "alice")
	s.ErrorIs(err, model.ErrSelfFriendRequest)
}

func (s *ManagerSuite) TestSendFriendRequestUnknownParties() {
	alice := s.create("alice", model.RolePermanent)

	s.ErrorIs(s.manager.SendFriendRequest(s.ctx, "404", "alice"), model.ErrInvalidUserID)
	s.ErrorIs(s.manager.SendFriendRequest(s.ctx, alice, "nobody"), model.ErrInvalidUsername)
}

func (s *ManagerSuite) TestAcceptFriendRequestMovesPendingToFriends() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))

	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, bob, alice))

	friends, _ := s.manager.Friends(bob)
	s.Equal([]model.AccountID{alice}, friends)
	pending, _ := s.manager.PendingFriends(bob)
	s.Empty(pending)

	// Acceptance is one-sided
	aliceFriends, _ := s.manager.Friends(alice)
	s.Empty(aliceFriends)

	stored, _ := s.memory.GetAccount(bob)
	s.True(stored.Friends.Has(alice))
	s.False(stored.PendingFriends.Has(alice))
}

func (s *ManagerSuite) TestAcceptWithoutPendingRequestStillAddsFriend() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)

	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, bob, alice))

	friends, _ := s.manager.Friends(bob)
	s.Equal([]model.AccountID{alice}, friends)
}

func (s *ManagerSuite) TestAcceptFriendRequestUnknownIDs() {
	alice := s.create("alice", model.RolePermanent)

	s.ErrorIs(s.manager.AcceptFriendRequest(s.ctx, "404", alice), model.ErrInvalidUserID)
	s.ErrorIs(s.manager.AcceptFriendRequest(s.ctx, alice, "404"), model.ErrInvalidUserID)
}

func (s *ManagerSuite) TestRejectFriendRequest() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))

	s.Require().NoError(s.manager.RejectFriendRequest(s.ctx, bob, alice))

	pending, _ := s.manager.PendingFriends(bob)
	s.Empty(pending)
	friends, _ := s.manager.Friends(bob)
	s.Empty(friends)
}

func (s *ManagerSuite) TestRejectWithoutPendingRequestIsNoop() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	saves := len(s.store.Saved())

	s.Require().NoError(s.manager.RejectFriendRequest(s.ctx, bob, alice))
	s.Len(s.store.Saved(), saves)
}

func (s *ManagerSuite) TestRemoveFriendIsOneSided() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, bob))
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, bob, alice))

	s.Require().NoError(s.manager.RemoveFriend(s.ctx, alice, bob))

	aliceFriends, _ := s.manager.Friends(alice)
	s.Empty(aliceFriends)
	bobFriends, _ := s.manager.Friends(bob)
	s.Equal([]model.AccountID{alice}, bobFriends)
}

func (s *ManagerSuite) TestFriendOperationsByUsername() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	carol := s.create("carol", model.RolePermanent)
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, alice, "bob"))
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, carol, "bob"))

	s.Require().NoError(s.manager.AcceptFriendRequestByUsername(s.ctx, bob, "alice"))
	s.Require().NoError(s.manager.RejectFriendRequestByUsername(s.ctx, bob, "carol"))

	names, _ := s.manager.FriendUsernames(bob)
	s.Equal([]string{"alice"}, names)
	pending, _ := s.manager.PendingFriendUsernames(bob)
	s.Empty(pending)

	s.Require().NoError(s.manager.RemoveFriendByUsername(s.ctx, bob, "alice"))
	names, _ = s.manager.FriendUsernames(bob)
	s.Empty(names)

	s.ErrorIs(s.manager.AcceptFriendRequestByUsername(s.ctx, bob, "nobody"), model.ErrInvalidUsername)
	s.ErrorIs(s.manager.RejectFriendRequestByUsername(s.ctx, bob, "nobody"), model.ErrInvalidUsername)
	s.ErrorIs(s.manager.RemoveFriendByUsername(s.ctx, bob, "nobody"), model.ErrInvalidUsername)
}

func (s *ManagerSuite) TestDeleteUserDropsRelations() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	carol := s.create("carol", model.RolePermanent)
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, bob))
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, carol))
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, bob, "carol"))
	saves := len(s.store.Saved())

	s.Require().NoError(s.manager.DeleteUser(s.ctx, bob))

	ids, _ := s.manager.Friends(alice)
	s.Equal([]model.AccountID{carol}, ids)
	pending, _ := s.manager.PendingFriends(carol)
	s.Empty(pending)

	// Both changed owners are written back
	s.Equal([]model.AccountID{alice, carol}, s.store.Saved()[saves:])
	stored, _ := s.memory.GetAccount(alice)
	s.False(stored.Friends.Has(bob))
}

func (s *ManagerSuite) TestDeleteUserRelationSaveFailure() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, bob))
	s.store.FailSaves(true)

	err := s.manager.DeleteUser(s.ctx, bob)

	s.ErrorIs(err, model.ErrPersistenceUnavailable)
	s.NotErrorIs(err, model.ErrStoreDiverged)
	s.Equal([]model.AccountID{bob}, s.store.Deleted())
	ids, _ := s.manager.Friends(alice)
	s.Empty(ids)
}

func (s *ManagerSuite) TestDeletedIDNotInheritedAfterRestart() {
	alice := s.create("alice", model.RolePermanent)
	s.create("bob", model.RolePermanent)
	carol := s.create("carol", model.RolePermanent)
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, carol))
	s.Require().NoError(s.manager.DeleteUser(s.ctx, carol))

	s.manager = s.newManager()
	mallory := s.create("mallory", model.RolePermanent)

	// The id is free again after a restart, but nothing points at it
	s.Equal(carol, mallory)
	names, err := s.manager.FriendUsernames(alice)
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *ManagerSuite) TestNewDropsRelationsToMissingAccounts() {
	registered := s.clock.Now()
	alice := model.NewAccount("1", "alice", "h", model.RolePermanent, registered)
	alice.Friends.Add("2")
	alice.Friends.Add("3")
	alice.PendingFriends.Add("7")
	s.Require().NoError(s.memory.SaveAccount(s.ctx, alice))
	s.Require().NoError(s.memory.SaveAccount(s.ctx, model.NewAccount("2", "bob", "h", model.RolePermanent, registered)))

	m := s.newManager()

	ids, _ := m.Friends("1")
	s.Equal([]model.AccountID{"2"}, ids)
	pending, _ := m.PendingFriends("1")
	s.Empty(pending)
	s.Contains(s.logs.String(), "dropped relations to missing accounts")

	next, err := m.CreateUser(s.ctx, "carol", "pw", model.RolePermanent)
	s.Require().NoError(err)
	s.Equal(model.AccountID("3"), next)
	ids, _ = m.Friends("1")
	s.Equal([]model.AccountID{"2"}, ids)
}

func (s *ManagerSuite) TestFriendSummariesPairIDsWithUsernames() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	carol := s.create("carol", model.RolePermanent)
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, bob))
	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, alice, carol))
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, carol, "alice"))
	s.Require().NoError(s.manager.EditUsername(s.ctx, bob, "robert"))

	friends, err := s.manager.FriendSummaries(alice)
	s.Require().NoError(err)
	s.Equal([]FriendSummary{{ID: bob, Username: "robert"}, {ID: carol, Username: "carol"}}, friends)

	s.Require().NoError(s.manager.DeleteUser(s.ctx, bob))
	friends, _ = s.manager.FriendSummaries(alice)
	s.Equal([]FriendSummary{{ID: carol, Username: "carol"}}, friends)

	pending, err := s.manager.PendingFriendSummaries(alice)
	s.Require().NoError(err)
	s.Equal([]FriendSummary{{ID: carol, Username: "carol"}}, pending)

	_, err = s.manager.FriendSummaries("404")
	s.ErrorIs(err, model.ErrInvalidUserID)
}

func (s *ManagerSuite) TestFriendUsernamesFollowRenames() {
	alice := s.create("alice", model.RolePermanent)
	bob := s.create("bob", model.RolePermanent)
	s.Require().NoError(s.manager.SendFriendRequest(s.ctx, bob, "alice"))

	s.Require().NoError(s.manager.EditUsername(s.ctx, bob, "robert"))

	names, _ := s.manager.PendingFriendUsernames(alice)
	s.Equal([]string{"robert"}, names)
}

func (s *ManagerSuite) TestFriendOperationsOnTrialOwnerNotPersisted() {
	alice := s.create("alice", model.RolePermanent)
	trial := s.manager.CreateTrialUser(s.ctx)
	saves := len(s.store.Saved())

	s.Require().NoError(s.manager.AcceptFriendRequest(s.ctx, trial, alice))

	friends, _ := s.manager.Friends(trial)
	s.Equal([]model.AccountID{alice}, friends)
	s.Len(s.store.Saved(), saves)
}

func (s *ManagerSuite) TestFriendListingsUnknownID() {
	_, err := s.manager.Friends("404")
	s.ErrorIs(err, model.ErrInvalidUserID)
	_, err = s.manager.PendingFriends("404")
	s.ErrorIs(err, model.ErrInvalidUserID)
	_, err = s.manager.FriendUsernames("404")
	s.ErrorIs(err, model.ErrInvalidUserID)
	_, err = s.manager.PendingFriendUsernames("404")
	s.ErrorIs(err, model.ErrInvalidUserID)
}
