package service

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type UserService struct{ d *Deps }

// UserCounters are the unseen-item badges shown on a player's own profile.
type UserCounters struct {
	NewMessages       int
	NewFriendRequests int
	NewFriends        int
}

// UserView is a profile as seen by a particular requester. Request is the
// pending request from the target to the requester, if any.
type UserView struct {
	User         *dom.User
	Rank         int
	FriendStatus dom.FriendStatus
	Request      *dom.FriendRequest
	Counters     *UserCounters
}

// Get loads target as seen by requester. requesterID may be zero for
// anonymous lookups.
func (s *UserService) Get(ctx context.Context, requesterID, targetID int, isOwn bool) (*UserView, error) {
	target, err := s.d.user(ctx, targetID)
	if err != nil {
		return nil, err
	}
	v := &UserView{User: target}
	if requesterID != targetID {
		if !target.Privileges.Has(privilege.UserProfilePublic) {
			if err := s.requirePrivateView(ctx, requesterID); err != nil {
				return nil, err
			}
		}
		if requesterID != 0 {
			if err := s.relate(ctx, v, requesterID); err != nil {
				return nil, err
			}
		}
	}

	if target.Privileges.Has(privilege.UserStarLeaderboardPublic) {
		if v.Rank, err = s.d.Leaderboard.StarRank(ctx, target.ID); err != nil {
			return nil, err
		}
	}

	if isOwn && requesterID == targetID {
		c, err := s.counters(ctx, targetID)
		if err != nil {
			return nil, err
		}
		v.Counters = c
	}
	return v, nil
}

func (s *UserService) requirePrivateView(ctx context.Context, requesterID int) error {
	if requesterID == 0 {
		return fail(UserPrivate)
	}
	requester, err := s.d.Users.FromID(ctx, requesterID)
	if errors.Is(err, dom.ErrNotFound) {
		return fail(UserPrivate)
	}
	if err != nil {
		return err
	}
	if !requester.Privileges.Has(privilege.UserViewPrivateProfile) {
		return fail(UserPrivate)
	}
	return nil
}

// relate fills the friendship fields of v from the requester's side.
func (s *UserService) relate(ctx context.Context, v *UserView, requesterID int) error {
	targetID := v.User.ID
	if _, err := s.d.Relationships.Between(ctx, dom.RelationshipBlocked, targetID, requesterID); err == nil {
		return fail(UserBlocked)
	} else if !errors.Is(err, dom.ErrNotFound) {
		return err
	}

	friends, err := s.d.friends(ctx, requesterID, targetID)
	if err != nil {
		return err
	}
	if friends {
		v.FriendStatus = dom.FriendStatusFriend
		return nil
	}
	if fr, err := s.d.FriendRequests.Between(ctx, targetID, requesterID); err == nil {
		v.FriendStatus = dom.FriendStatusIncoming
		v.Request = fr
		return nil
	} else if !errors.Is(err, dom.ErrNotFound) {
		return err
	}
	if _, err := s.d.FriendRequests.Between(ctx, requesterID, targetID); err == nil {
		v.FriendStatus = dom.FriendStatusOutgoing
	} else if !errors.Is(err, dom.ErrNotFound) {
		return err
	}
	return nil
}

func (s *UserService) counters(ctx context.Context, userID int) (*UserCounters, error) {
	msgs, err := s.d.Messages.CountNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.d.FriendRequests.CountNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	friends, err := s.d.Relationships.CountNew(ctx, dom.RelationshipFriend, userID)
	if err != nil {
		return nil, err
	}
	return &UserCounters{NewMessages: int(msgs), NewFriendRequests: int(reqs), NewFriends: int(friends)}, nil
}

// UpdateStats applies a gameplay and cosmetic update and refreshes the star
// leaderboard for users who appear on it.
func (s *UserService) UpdateStats(ctx context.Context, userID int, upd dom.UserUpdate) (*dom.User, error) {
	upd.Username, upd.Email, upd.Privileges = nil, nil, nil
	upd.MessagePrivacy, upd.FriendPrivacy, upd.CommentPrivacy = nil, nil, nil
	upd.YoutubeName, upd.TwitterName, upd.TwitchName = nil, nil, nil
	upd.CreatorPoints = nil

	u, err := s.d.Users.Update(ctx, userID, upd)
	if err != nil {
		return nil, orKind(err, UserNotFound)
	}
	if u.Privileges.Has(privilege.UserProfilePublic) && u.Privileges.Has(privilege.UserStarLeaderboardPublic) {
		s.d.follow(ctx, "leaderboard stars", func(ctx context.Context) error { return s.d.Leaderboard.SetStars(ctx, u.ID, u.Stars) })
	}
	return u, nil
}

// Settings is the account settings form.
type Settings struct {
	MessagePrivacy dom.PrivacySetting
	FriendPrivacy  dom.PrivacySetting
	CommentPrivacy dom.PrivacySetting
	Youtube        string
	Twitter        string
	Twitch         string
}

func (s *UserService) UpdateSettings(ctx context.Context, userID int, st Settings) (*dom.User, error) {
	for _, p := range []dom.PrivacySetting{st.MessagePrivacy, st.FriendPrivacy, st.CommentPrivacy} {
		if !p.Valid() {
			return nil, fail(UserInvalidSettings)
		}
	}
	u, err := s.d.Users.Update(ctx, userID, dom.UserUpdate{
		MessagePrivacy: &st.MessagePrivacy,
		FriendPrivacy:  &st.FriendPrivacy,
		CommentPrivacy: &st.CommentPrivacy,
		YoutubeName:    &st.Youtube,
		TwitterName:    &st.Twitter,
		TwitchName:     &st.Twitch,
	})
	return u, orKind(err, UserNotFound)
}

// UpdatePrivileges replaces the user's privileges and moves the user on or
// off the leaderboards accordingly.
func (s *UserService) UpdatePrivileges(ctx context.Context, userID int, set privilege.Set) (*dom.User, error) {
	before, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	u, err := s.d.Users.Update(ctx, userID, dom.UserUpdate{Privileges: &set})
	if err != nil {
		return nil, err
	}
	s.syncBoards(ctx, before.Privileges, u)
	return u, nil
}

func (s *UserService) syncBoards(ctx context.Context, before privilege.Set, u *dom.User) {
	after := u.Privileges
	switch had, has := before.Has(privilege.UserStarLeaderboardPublic), after.Has(privilege.UserStarLeaderboardPublic); {
	case had && !has:
		s.d.follow(ctx, "leaderboard stars", func(ctx context.Context) error { return s.d.Leaderboard.RemoveStars(ctx, u.ID) })
	case !had && has:
		s.d.follow(ctx, "leaderboard stars", func(ctx context.Context) error { return s.d.Leaderboard.SetStars(ctx, u.ID, u.Stars) })
	}
	switch had, has := before.Has(privilege.UserCreatorLeaderboardPublic), after.Has(privilege.UserCreatorLeaderboardPublic); {
	case had && !has:
		s.d.follow(ctx, "leaderboard creators", func(ctx context.Context) error { return s.d.Leaderboard.RemoveCreatorPoints(ctx, u.ID) })
	case !had && has:
		s.d.follow(ctx, "leaderboard creators", func(ctx context.Context) error { return s.d.Leaderboard.SetCreatorPoints(ctx, u.ID, u.CreatorPoints) })
	}
}

// Restrict masks the social and leaderboard privileges and drops the user
// from both leaderboards.
func (s *UserService) Restrict(ctx context.Context, userID int) (*dom.User, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := u.Privileges.Mask(privilege.Restricted)
	if u, err = s.d.Users.Update(ctx, userID, dom.UserUpdate{Privileges: &set}); err != nil {
		return nil, err
	}
	s.d.follow(ctx, "leaderboard stars", func(ctx context.Context) error { return s.d.Leaderboard.RemoveStars(ctx, u.ID) })
	s.d.follow(ctx, "leaderboard creators", func(ctx context.Context) error { return s.d.Leaderboard.RemoveCreatorPoints(ctx, u.ID) })
	return u, nil
}

// Unrestrict restores the masked privileges and re-ranks the user.
func (s *UserService) Unrestrict(ctx context.Context, userID int) (*dom.User, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := u.Privileges.Union(privilege.Restricted)
	if u, err = s.d.Users.Update(ctx, userID, dom.UserUpdate{Privileges: &set}); err != nil {
		return nil, err
	}
	s.d.follow(ctx, "leaderboard stars", func(ctx context.Context) error { return s.d.Leaderboard.SetStars(ctx, u.ID, u.Stars) })
	s.d.follow(ctx, "leaderboard creators", func(ctx context.Context) error { return s.d.Leaderboard.SetCreatorPoints(ctx, u.ID, u.CreatorPoints) })
	return u, nil
}

// Search returns one page of users matching query. Private profiles are
// included only for requesters allowed to view them.
func (s *UserService) Search(ctx context.Context, requesterID int, query string, page, pageSize int) ([]*dom.User, int, error) {
	q := dom.UserSearchQuery{Query: query, Page: page, PageSize: pageSize}
	if requesterID != 0 {
		if r, err := s.d.Users.FromID(ctx, requesterID); err == nil {
			q.IncludePrivate = r.Privileges.Has(privilege.UserViewPrivateProfile)
		} else if !errors.Is(err, dom.ErrNotFound) {
			return nil, 0, err
		}
	}
	res, err := s.d.Users.Search(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.d.Users.FromIDs(ctx, res.IDs)
	if err != nil {
		return nil, 0, err
	}
	return users, res.Total, nil
}

// ModeratorLevel answers requestUserAccess: 2 for elder moderators, 1 for
// moderators.
func (s *UserService) ModeratorLevel(ctx context.Context, userID int) (int, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return 0, err
	}
	switch {
	case u.Privileges.Has(privilege.UserRequestElder):
		return 2, nil
	case u.Privileges.Has(privilege.UserRequestModerator):
		return 1, nil
	}
	return 0, fail(UserNoPrivilege)
}

// follow queues a best-effort write to another store until the request
// commits, and logs its failure.
func (d *Deps) follow(ctx context.Context, what string, fn func(ctx context.Context) error) {
	db.AfterCommit(ctx, func(ctx context.Context) {
		if err := fn(ctx); err != nil {
			logx.WithContext(ctx).Errorf("%s: %v", what, err)
		}
	})
}
