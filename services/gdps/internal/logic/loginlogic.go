package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type LoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoginLogic {
	return &LoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LoginLogic) Login(req *types.LoginRequest) (resp string, err error) {
	auth := l.svcCtx.Services.Auth
	var u *dom.User
	switch {
	case req.GJP2 != "":
		u, err = auth.AuthenticateNameGJP2(l.ctx, req.UserName, req.GJP2)
	case req.Password != "":
		u, err = auth.Authenticate(l.ctx, req.UserName, req.Password)
	default:
		return "", response.Failed
	}
	if err != nil {
		return "", err
	}
	id := strconv.Itoa(u.ID)
	return id + "," + id, nil
}
