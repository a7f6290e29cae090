package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type RateDemonLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRateDemonLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RateDemonLogic {
	return &RateDemonLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RateDemonLogic) RateDemon(req *types.RateDemonRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	lv, err := l.svcCtx.Services.Levels.RateDemon(l.ctx, u.ID, req.LevelID, req.Rating)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(lv.ID), nil
}
