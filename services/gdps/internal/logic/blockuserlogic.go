package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type BlockUserLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBlockUserLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BlockUserLogic {
	return &BlockUserLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *BlockUserLogic) BlockUser(req *types.TargetRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if err := l.svcCtx.Services.Relationships.Block(l.ctx, u.ID, req.TargetAccountID); err != nil {
		return "", err
	}
	return "1", nil
}
