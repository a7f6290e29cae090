package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type AccountURLLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAccountURLLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AccountURLLogic {
	return &AccountURLLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AccountURLLogic) AccountURL() (resp string, err error) {
	return l.svcCtx.Config.Game.PublicURL, nil
}
