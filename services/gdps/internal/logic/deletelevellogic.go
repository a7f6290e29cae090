package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DeleteLevelLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteLevelLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteLevelLogic {
	return &DeleteLevelLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteLevelLogic) DeleteLevel(req *types.LevelRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if err := l.svcCtx.Services.Levels.Delete(l.ctx, u.ID, req.LevelID); err != nil {
		return "", err
	}
	return "1", nil
}
