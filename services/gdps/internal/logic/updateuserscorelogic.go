package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UpdateUserScoreLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateUserScoreLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateUserScoreLogic {
	return &UpdateUserScoreLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdateUserScoreLogic) UpdateUserScore(req *types.UpdateUserScoreRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	glow := req.AccGlow != 0
	upd := dom.UserUpdate{
		Stars:           &req.Stars,
		Demons:          &req.Demons,
		Moons:           &req.Moons,
		Diamonds:        &req.Diamonds,
		Coins:           &req.Coins,
		UserCoins:       &req.UserCoins,
		PrimaryColour:   &req.Color1,
		SecondaryColour: &req.Color2,
		GlowColour:      &req.Color3,
		DisplayType:     &req.IconType,
		Icon:            &req.AccIcon,
		Ship:            &req.AccShip,
		Ball:            &req.AccBall,
		Ufo:             &req.AccBird,
		Wave:            &req.AccDart,
		Robot:           &req.AccRobot,
		Spider:          &req.AccSpider,
		SwingCopter:     &req.AccSwing,
		Jetpack:         &req.AccJetpack,
		Glow:            &glow,
		Explosion:       &req.AccExplosion,
	}
	if _, err := l.svcCtx.Services.Users.UpdateStats(l.ctx, u.ID, upd); err != nil {
		return "", err
	}
	return strconv.Itoa(u.ID), nil
}
