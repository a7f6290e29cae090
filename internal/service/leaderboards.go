package service

import (
	"context"
	"slices"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type LeaderboardService struct{ d *Deps }

// BoardType selects a score listing.
type BoardType string

const (
	BoardTop      BoardType = "top"
	BoardCreators BoardType = "creators"
	BoardRelative BoardType = "relative"
	BoardFriends  BoardType = "friends"
)

// Ranked is a user with their 1-based position in a listing.
type Ranked struct {
	User *dom.User
	Rank int
}

// Scores returns up to count entries of the board t as seen by userID.
func (s *LeaderboardService) Scores(ctx context.Context, userID int, t BoardType, count int) ([]Ranked, error) {
	switch t {
	case BoardFriends:
		return s.friends(ctx, userID)
	case BoardCreators:
		ids, err := s.d.Leaderboard.TopCreators(ctx, 0, count)
		if err != nil {
			return nil, err
		}
		return s.ranked(ctx, ids, 1)
	case BoardRelative:
		rank, err := s.d.Leaderboard.StarRank(ctx, userID)
		if err != nil {
			return nil, err
		}
		offset := max(rank-1-count/2, 0)
		ids, err := s.d.Leaderboard.TopStars(ctx, offset, count)
		if err != nil {
			return nil, err
		}
		return s.ranked(ctx, ids, offset+1)
	default:
		ids, err := s.d.Leaderboard.TopStars(ctx, 0, count)
		if err != nil {
			return nil, err
		}
		return s.ranked(ctx, ids, 1)
	}
}

func (s *LeaderboardService) ranked(ctx context.Context, ids []int, first int) ([]Ranked, error) {
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]Ranked, 0, len(users))
	for i, u := range users {
		out = append(out, Ranked{User: u, Rank: first + i})
	}
	return out, nil
}

// friends ranks the user and their friends by stars.
func (s *LeaderboardService) friends(ctx context.Context, userID int) ([]Ranked, error) {
	rels, err := s.d.Relationships.ListForUser(ctx, dom.RelationshipFriend, userID)
	if err != nil {
		return nil, err
	}
	ids := []int{userID}
	for _, r := range rels {
		ids = append(ids, r.TargetUserID)
	}
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(users, func(a, b *dom.User) int { return b.Stars - a.Stars })
	out := make([]Ranked, 0, len(users))
	for i, u := range users {
		out = append(out, Ranked{User: u, Rank: i + 1})
	}
	return out, nil
}

// SyncStars rewrites the star leaderboard from the user table.
func (s *LeaderboardService) SyncStars(ctx context.Context) (int, error) {
	n := 0
	err := s.d.Users.Each(ctx, func(u *dom.User) error {
		if !u.Privileges.Has(privilege.UserStarLeaderboardPublic) {
			return s.d.Leaderboard.RemoveStars(ctx, u.ID)
		}
		n++
		return s.d.Leaderboard.SetStars(ctx, u.ID, u.Stars)
	})
	logx.WithContext(ctx).Infof("synced %d users to the star leaderboard", n)
	return n, err
}

// SyncCreators rewrites the creator leaderboard from the user table.
func (s *LeaderboardService) SyncCreators(ctx context.Context) (int, error) {
	n := 0
	err := s.d.Users.Each(ctx, func(u *dom.User) error {
		if !u.Privileges.Has(privilege.UserCreatorLeaderboardPublic) {
			return s.d.Leaderboard.RemoveCreatorPoints(ctx, u.ID)
		}
		n++
		return s.d.Leaderboard.SetCreatorPoints(ctx, u.ID, u.CreatorPoints)
	})
	logx.WithContext(ctx).Infof("synced %d users to the creator leaderboard", n)
	return n, err
}
