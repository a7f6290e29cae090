package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

type RequestUserAccessLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRequestUserAccessLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RequestUserAccessLogic {
	return &RequestUserAccessLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RequestUserAccessLogic) RequestUserAccess() (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	level, err := l.svcCtx.Services.Users.ModeratorLevel(l.ctx, u.ID)
	if err != nil {
		return "", err
	}
	if level == 0 {
		return "", response.Failed
	}
	return strconv.Itoa(level), nil
}
