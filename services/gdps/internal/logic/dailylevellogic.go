package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DailyLevelLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDailyLevelLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DailyLevelLogic {
	return &DailyLevelLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DailyLevelLogic) DailyLevel(req *types.DailyLevelRequest) (resp string, err error) {
	t := dom.ScheduleDaily
	if req.Type == 1 || req.Weekly == 1 {
		t = dom.ScheduleWeekly
	}
	slot, left, err := l.svcCtx.Services.Schedules.Current(l.ctx, t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d|%d", slot.WireID(), int(left/time.Second)), nil
}
