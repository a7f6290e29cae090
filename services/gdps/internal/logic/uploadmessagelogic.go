package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UploadMessageLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadMessageLogic {
	return &UploadMessageLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadMessageLogic) UploadMessage(req *types.UploadMessageRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	subject, err := decodeText(req.Subject)
	if err != nil {
		return "", err
	}
	body, err := codec.DecodeXOR(req.Body, codec.KeyMessage)
	if err != nil {
		return "", response.Failed
	}
	if _, err := l.svcCtx.Services.Messages.Send(l.ctx, u.ID, req.ToAccountID, subject, body); err != nil {
		return "", err
	}
	return "1", nil
}
