package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type LikeItemLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLikeItemLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LikeItemLogic {
	return &LikeItemLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LikeItemLogic) LikeItem(req *types.LikeItemRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if err := l.svcCtx.Services.Likes.Like(l.ctx, u.ID, dom.LikeTarget(req.Type), req.ItemID, req.Like != 0); err != nil {
		return "", err
	}
	return "1", nil
}
