package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type RateStarsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRateStarsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RateStarsLogic {
	return &RateStarsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RateStarsLogic) RateStars(req *types.RateStarsRequest) (resp string, err error) {
	// Player votes are acknowledged but not kept.
	if req.Stars < 1 || req.Stars > 10 {
		return "", response.Failed
	}
	l.Infof("user %d voted %d stars on level %d", svc.UserID(l.ctx), req.Stars, req.LevelID)
	return "1", nil
}
