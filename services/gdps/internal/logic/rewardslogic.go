package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type RewardsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRewardsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RewardsLogic {
	return &RewardsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RewardsLogic) Rewards(req *types.RewardsRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	check, err := codec.DecodeCheck(req.Chk, codec.KeyChest)
	if err != nil {
		return "", response.Failed
	}
	intent := dom.ChestType(req.RewardType)
	st, err := l.svcCtx.Services.Chests.Open(l.ctx, u.ID, intent)
	if err != nil {
		return "", err
	}
	plain := codec.ChestState{
		UserID:         u.ID,
		Check:          check,
		UDID:           req.UDID,
		SmallRemaining: st.SmallRemaining,
		SmallCount:     st.SmallCount,
		LargeRemaining: st.LargeRemaining,
		LargeCount:     st.LargeCount,
		RewardType:     intent,
	}
	if st.Claimed != nil {
		rewards := codec.ChestRewards(st.Claimed)
		if intent == dom.ChestLarge {
			plain.LargeRewards = rewards
		} else {
			plain.SmallRewards = rewards
		}
	}
	_, body := codec.EncodeChest(codec.RandomPrefix(), codec.ChestPlain(plain))
	return body, nil
}
