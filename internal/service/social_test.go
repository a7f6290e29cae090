package service

import (
	"context"
	"testing"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

func friendCounts(t *testing.T, f *fixture, userID int) (held, targeted int64) {
	t.Helper()
	ctx := context.Background()
	held, err := f.deps.Relationships.CountFor(ctx, dom.RelationshipFriend, userID, false)
	if err != nil {
		t.Fatal(err)
	}
	targeted, err = f.deps.Relationships.CountFor(ctx, dom.RelationshipFriend, userID, true)
	if err != nil {
		t.Fatal(err)
	}
	return held, targeted
}

func TestFriendRequestFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")

	_, err := f.Friends.Send(ctx, b.ID, b.ID, "")
	wantKind(t, err, FriendRequestInvalidTargetID)

	fr, err := f.Friends.Send(ctx, b.ID, a.ID, "Hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	_, err = f.Friends.Send(ctx, b.ID, a.ID, "Again")
	wantKind(t, err, FriendRequestExists)

	page, err := f.Friends.List(ctx, a.ID, false, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Requests) != 1 || page.Counterparts[b.ID] == nil || page.Requests[0].Message != "Hello" {
		t.Fatalf("received = %+v", page)
	}

	wantKind(t, f.Friends.MarkSeen(ctx, b.ID, fr.ID), FriendRequestInvalidOwner)
	if err := f.Friends.MarkSeen(ctx, a.ID, fr.ID); err != nil {
		t.Fatal(err)
	}

	view, err := f.Users.Get(ctx, a.ID, b.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if view.FriendStatus != dom.FriendStatusIncoming || view.Request == nil || view.Request.ID != fr.ID {
		t.Fatalf("status before accept = %d", view.FriendStatus)
	}
	if back, _ := f.Users.Get(ctx, b.ID, a.ID, false); back.FriendStatus != dom.FriendStatusOutgoing {
		t.Fatalf("sender side status = %d", back.FriendStatus)
	}

	if err := f.Friends.Accept(ctx, a.ID, fr.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	for _, u := range []*dom.User{a, b} {
		held, targeted := friendCounts(t, f, u.ID)
		if held != 1 || targeted != 1 {
			t.Fatalf("user %d friendships held=%d targeted=%d", u.ID, held, targeted)
		}
	}
	if _, err := f.deps.FriendRequests.Between(ctx, b.ID, a.ID); err == nil {
		t.Fatal("accepted request still live")
	}

	view, _ = f.Users.Get(ctx, a.ID, b.ID, false)
	if view.FriendStatus != dom.FriendStatusFriend {
		t.Fatalf("status after accept = %d", view.FriendStatus)
	}
	_, err = f.Friends.Send(ctx, a.ID, b.ID, "")
	wantKind(t, err, RelationshipExists)

	if err := f.Relationships.RemoveFriend(ctx, b.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	for _, u := range []*dom.User{a, b} {
		if held, targeted := friendCounts(t, f, u.ID); held != 0 || targeted != 0 {
			t.Fatalf("user %d still has friendships %d/%d", u.ID, held, targeted)
		}
	}
}

func TestBlockEndsFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")
	fr, _ := f.Friends.Send(ctx, a.ID, b.ID, "")
	if err := f.Friends.Accept(ctx, b.ID, fr.ID); err != nil {
		t.Fatal(err)
	}

	if err := f.Relationships.Block(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	wantKind(t, f.Relationships.Block(ctx, a.ID, b.ID), RelationshipExists)
	for _, u := range []*dom.User{a, b} {
		held, targeted := friendCounts(t, f, u.ID)
		if held != targeted {
			t.Fatalf("asymmetric friendship for %d: %d/%d", u.ID, held, targeted)
		}
	}
	_, err := f.Users.Get(ctx, b.ID, a.ID, false)
	wantKind(t, err, UserBlocked)
	_, err = f.Messages.Send(ctx, b.ID, a.ID, "hi", "there")
	wantKind(t, err, UserBlocked)

	blocked, err := f.Relationships.List(ctx, a.ID, dom.RelationshipBlocked)
	if err != nil || len(blocked) != 1 || blocked[0].User.ID != b.ID || !blocked[0].Unseen {
		t.Fatalf("block list = %+v, %v", blocked, err)
	}
	if n, _ := f.deps.Relationships.CountNew(ctx, dom.RelationshipBlocked, a.ID); n != 0 {
		t.Fatalf("unseen after listing = %d", n)
	}

	if err := f.Relationships.Unblock(ctx, a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	wantKind(t, f.Relationships.Unblock(ctx, a.ID, b.ID), RelationshipNotFound)
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")

	_, err := f.Messages.Send(ctx, a.ID, a.ID, "s", "c")
	wantKind(t, err, MessagesInvalidRecipient)

	m, err := f.Messages.Send(ctx, a.ID, b.ID, "subject", "content")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	view, err := f.Users.Get(ctx, b.ID, b.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if view.Counters == nil || view.Counters.NewMessages != 1 {
		t.Fatalf("counters = %+v", view.Counters)
	}

	opened, err := f.Messages.Get(ctx, b.ID, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if opened.Sent || opened.Counterpart.ID != a.ID || opened.Message.SeenTs == nil {
		t.Fatalf("opened = %+v", opened)
	}
	if n, _ := f.deps.Messages.CountNew(ctx, b.ID); n != 0 {
		t.Fatalf("unseen after open = %d", n)
	}

	if err := f.Messages.Delete(ctx, b.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	inbox, _ := f.Messages.List(ctx, b.ID, false, 0, 10)
	outbox, _ := f.Messages.List(ctx, a.ID, true, 0, 10)
	if len(inbox.Messages) != 0 || len(outbox.Messages) != 1 || outbox.Counterparts[b.ID] == nil {
		t.Fatalf("inbox=%d outbox=%d", len(inbox.Messages), len(outbox.Messages))
	}

	c := f.register(t, "Carol")
	wantKind(t, f.Messages.Delete(ctx, c.ID, m.ID), MessagesInvalidOwner)

	if _, err := f.Users.UpdateSettings(ctx, c.ID, Settings{MessagePrivacy: dom.PrivacyFriends}); err != nil {
		t.Fatal(err)
	}
	_, err = f.Messages.Send(ctx, a.ID, c.ID, "s", "c")
	wantKind(t, err, MessagesRecipientPrivate)
}

func TestPrivateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")
	if _, err := f.Users.UpdatePrivileges(ctx, a.ID, a.Privileges.Without(privilege.UserProfilePublic)); err != nil {
		t.Fatal(err)
	}
	_, err := f.Users.Get(ctx, b.ID, a.ID, false)
	wantKind(t, err, UserPrivate)
	if _, err := f.Users.Get(ctx, a.ID, a.ID, true); err != nil {
		t.Fatalf("own private profile: %v", err)
	}
	f.grant(t, b, privilege.UserViewPrivateProfile)
	if _, err := f.Users.Get(ctx, b.ID, a.ID, false); err != nil {
		t.Fatalf("privileged view: %v", err)
	}
}

func TestLeaderboardMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	stars := 120
	if _, err := f.Users.UpdateStats(ctx, a.ID, dom.UserUpdate{Stars: &stars}); err != nil {
		t.Fatal(err)
	}
	if rank, _ := f.board.StarRank(ctx, a.ID); rank != 1 {
		t.Fatalf("rank after stats = %d", rank)
	}

	if _, err := f.Users.Restrict(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if rank, _ := f.board.StarRank(ctx, a.ID); rank != 0 {
		t.Fatalf("restricted user ranked %d", rank)
	}
	u, err := f.Users.Unrestrict(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !u.Privileges.HasAll(privilege.Restricted) {
		t.Fatal("unrestrict did not restore privileges")
	}
	if rank, _ := f.board.StarRank(ctx, a.ID); rank != 1 {
		t.Fatalf("rank after unrestrict = %d", rank)
	}

	if _, err := f.Users.UpdatePrivileges(ctx, a.ID, u.Privileges.Without(privilege.UserStarLeaderboardPublic)); err != nil {
		t.Fatal(err)
	}
	if rank, _ := f.board.StarRank(ctx, a.ID); rank != 0 {
		t.Fatalf("rank after revoking = %d", rank)
	}

	scores, err := f.Leaderboards.Scores(ctx, a.ID, BoardFriends, 100)
	if err != nil || len(scores) != 1 || scores[0].User.ID != a.ID {
		t.Fatalf("friends board = %+v, %v", scores, err)
	}
}
