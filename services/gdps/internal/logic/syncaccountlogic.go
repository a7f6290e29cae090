package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type SyncAccountLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSyncAccountLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SyncAccountLogic {
	return &SyncAccountLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SyncAccountLogic) SyncAccount() (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	return l.svcCtx.Services.SaveData.Get(l.ctx, u.ID)
}
