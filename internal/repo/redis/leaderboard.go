package redisrepo

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	dom "github.com/gdps-go/gdps/internal/ports"
)

const (
	starsKey    = "leaderboards:stars"
	creatorsKey = "leaderboards:creators"
)

// Leaderboard keeps star and creator rankings in two sorted sets.
type Leaderboard struct {
	cli      redis.UniversalClient
	stars    string
	creators string
}

var _ dom.Leaderboard = (*Leaderboard)(nil)

func NewLeaderboard(cli redis.UniversalClient, prefix string) *Leaderboard {
	return &Leaderboard{cli: cli, stars: key(prefix, starsKey), creators: key(prefix, creatorsKey)}
}

// set writes score for member, removing it when score is not positive.
func (l *Leaderboard) set(ctx context.Context, set string, userID, score int) error {
	member := strconv.Itoa(userID)
	if score <= 0 {
		return l.cli.ZRem(ctx, set, member).Err()
	}
	return l.cli.ZAdd(ctx, set, redis.Z{Score: float64(score), Member: member}).Err()
}

// rank is 1-based and descending; 0 means unranked.
func (l *Leaderboard) rank(ctx context.Context, set string, userID int) (int, error) {
	r, err := l.cli.ZRevRank(ctx, set, strconv.Itoa(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(r) + 1, nil
}

func (l *Leaderboard) top(ctx context.Context, set string, offset, count int) ([]int, error) {
	if count <= 0 {
		return nil, nil
	}
	members, err := l.cli.ZRevRange(ctx, set, int64(offset), int64(offset+count-1)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *Leaderboard) SetStars(ctx context.Context, userID, stars int) error {
	return l.set(ctx, l.stars, userID, stars)
}

func (l *Leaderboard) SetCreatorPoints(ctx context.Context, userID, points int) error {
	return l.set(ctx, l.creators, userID, points)
}

func (l *Leaderboard) RemoveStars(ctx context.Context, userID int) error {
	return l.cli.ZRem(ctx, l.stars, strconv.Itoa(userID)).Err()
}

func (l *Leaderboard) RemoveCreatorPoints(ctx context.Context, userID int) error {
	return l.cli.ZRem(ctx, l.creators, strconv.Itoa(userID)).Err()
}

func (l *Leaderboard) StarRank(ctx context.Context, userID int) (int, error) {
	return l.rank(ctx, l.stars, userID)
}

func (l *Leaderboard) CreatorRank(ctx context.Context, userID int) (int, error) {
	return l.rank(ctx, l.creators, userID)
}

func (l *Leaderboard) TopStars(ctx context.Context, offset, count int) ([]int, error) {
	return l.top(ctx, l.stars, offset, count)
}

func (l *Leaderboard) TopCreators(ctx context.Context, offset, count int) ([]int, error) {
	return l.top(ctx, l.creators, offset, count)
}
