package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UpdateDescriptionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateDescriptionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateDescriptionLogic {
	return &UpdateDescriptionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdateDescriptionLogic) UpdateDescription(req *types.UpdateDescriptionRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	desc, err := decodeText(req.LevelDesc)
	if err != nil {
		return "", err
	}
	if _, err := l.svcCtx.Services.Levels.UpdateDescription(l.ctx, u.ID, req.LevelID, desc); err != nil {
		return "", err
	}
	return "1", nil
}
