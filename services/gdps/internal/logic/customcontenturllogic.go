package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type CustomContentURLLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCustomContentURLLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CustomContentURLLogic {
	return &CustomContentURLLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CustomContentURLLogic) CustomContentURL() (resp string, err error) {
	return l.svcCtx.Config.Game.CustomContentURL, nil
}
