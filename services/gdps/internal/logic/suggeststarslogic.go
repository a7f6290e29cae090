package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type SuggestStarsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSuggestStarsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SuggestStarsLogic {
	return &SuggestStarsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SuggestStarsLogic) SuggestStars(req *types.SuggestStarsRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	rating := service.Rating{Stars: req.Stars}
	if req.Feature >= 0 {
		rating.FeatureOrder = &req.Feature
	}
	if req.Coins >= 0 {
		verified := req.Coins != 0
		rating.CoinsVerified = &verified
	}
	if _, err := l.svcCtx.Services.Levels.Rate(l.ctx, u.ID, req.LevelID, rating); err != nil {
		return "", err
	}
	return "1", nil
}
