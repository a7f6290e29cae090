package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DownloadMessageLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDownloadMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DownloadMessageLogic {
	return &DownloadMessageLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DownloadMessageLogic) DownloadMessage(req *types.DownloadMessageRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	o, err := l.svcCtx.Services.Messages.Get(l.ctx, u.ID, req.MessageID)
	if err != nil {
		return "", err
	}
	return codec.Encode(codec.Message(o.Message, o.Counterpart, o.Sent, true, l.svcCtx.Now()), codec.Sep), nil
}
