package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type BackupAccountLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBackupAccountLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BackupAccountLogic {
	return &BackupAccountLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *BackupAccountLogic) BackupAccount(req *types.BackupRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if req.SaveData == "" {
		return "", response.Failed
	}
	if err := l.svcCtx.Services.SaveData.Put(l.ctx, u.ID, req.SaveData, req.GameVersion, req.BinaryVersion); err != nil {
		return "", err
	}
	return "1", nil
}
