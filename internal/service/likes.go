package service

import (
	"context"
	"errors"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type LikeService struct{ d *Deps }

// Like records a like or dislike by userID. Each user rates a target once.
func (s *LikeService) Like(ctx context.Context, userID int, target dom.LikeTarget, targetID int, like bool) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	if target != dom.LikeTargetLevel && !u.Privileges.Has(privilege.CommentsLike) {
		return fail(LikesNoPrivilege)
	}

	var adjust func(ctx context.Context, id, delta int) error
	switch target {
	case dom.LikeTargetLevel:
		l, err := s.d.Levels.FromID(ctx, targetID)
		if err != nil || l.Deleted {
			return orKind(errOr(err, dom.ErrNotFound), LikesInvalidTarget)
		}
		adjust = s.d.Levels.AdjustLikes
	case dom.LikeTargetLevelComment:
		if _, err := s.d.LevelComments.FromID(ctx, targetID); err != nil {
			return orKind(err, LikesInvalidTarget)
		}
		adjust = s.d.LevelComments.AdjustLikes
	case dom.LikeTargetUserComment:
		if _, err := s.d.UserComments.FromID(ctx, targetID); err != nil {
			return orKind(err, LikesInvalidTarget)
		}
		adjust = s.d.UserComments.AdjustLikes
	default:
		return fail(LikesInvalidTarget)
	}

	if _, err := s.d.Likes.Find(ctx, target, targetID, userID); err == nil {
		return fail(LikesAlreadyLiked)
	} else if !errors.Is(err, dom.ErrNotFound) {
		return err
	}
	value := 1
	if !like {
		value = -1
	}
	return s.d.inTx(ctx, func(ctx context.Context) error {
		err := s.d.Likes.Create(ctx, &dom.LikeInteraction{
			TargetType: target,
			TargetID:   targetID,
			UserID:     userID,
			Value:      value,
		})
		if err != nil {
			return err
		}
		return adjust(ctx, targetID, value)
	})
}
