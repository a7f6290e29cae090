package service

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/chest"
	dom "github.com/gdps-go/gdps/internal/ports"
)

type ChestService struct{ d *Deps }

// ChestState is the per-user view of both chest tiers. Claimed holds the
// rewards of the chest opened by this call, if any.
type ChestState struct {
	SmallRemaining time.Duration
	LargeRemaining time.Duration
	SmallCount     int
	LargeCount     int
	Claimed        *dom.DailyChest
}

// Open reports chest state for intent ChestView, or claims the named tier.
func (s *ChestService) Open(ctx context.Context, userID int, intent dom.ChestType) (*ChestState, error) {
	now := s.d.Now()
	st := &ChestState{}
	for _, t := range []dom.ChestType{dom.ChestSmall, dom.ChestLarge} {
		last, err := s.d.Chests.Latest(ctx, userID, t)
		if err != nil && !errors.Is(err, dom.ErrNotFound) {
			return nil, err
		}
		count, err := s.d.Chests.Count(ctx, userID, t)
		if err != nil {
			return nil, err
		}
		remaining := chest.Remaining(t, last, now)
		if t == dom.ChestSmall {
			st.SmallRemaining, st.SmallCount = remaining, int(count)
		} else {
			st.LargeRemaining, st.LargeCount = remaining, int(count)
		}
	}
	if intent != dom.ChestSmall && intent != dom.ChestLarge {
		return st, nil
	}

	remaining := st.SmallRemaining
	if intent == dom.ChestLarge {
		remaining = st.LargeRemaining
	}
	if remaining > 0 {
		return nil, fail(DailyChestsAlreadyClaimed)
	}
	mana, err := s.d.Chests.TotalMana(ctx, userID)
	if err != nil {
		return nil, err
	}
	claim := s.d.ChestEngine.Roll(intent, mana)
	claim.UserID = userID
	claim.ClaimedTs = now
	if err := s.d.inTx(ctx, func(ctx context.Context) error {
		return s.d.Chests.Create(ctx, &claim)
	}); err != nil {
		return nil, err
	}

	st.Claimed = &claim
	if intent == dom.ChestSmall {
		st.SmallRemaining = chest.SmallCooldown
		st.SmallCount++
	} else {
		st.LargeRemaining = chest.LargeCooldown
		st.LargeCount++
	}
	logx.WithContext(ctx).Infof("user %d claimed %s chest: %d mana, %d diamonds", userID, intent, claim.Mana, claim.Diamonds)
	return st, nil
}
