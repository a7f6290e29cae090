package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DownloadLevelLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDownloadLevelLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DownloadLevelLogic {
	return &DownloadLevelLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DownloadLevelLogic) DownloadLevel(req *types.LevelRequest) (resp string, err error) {
	d, err := l.svcCtx.Services.Levels.Get(l.ctx, req.LevelID)
	if err != nil {
		return "", err
	}
	scheduleID := 0
	if d.Schedule != nil {
		scheduleID = d.Schedule.WireID()
	}
	lv := d.Level
	record := codec.FullLevel(lv, codec.LevelView{Now: l.svcCtx.Now(), Data: d.Data, ScheduleID: scheduleID})
	meta := codec.LevelMetaHash(lv.UserID, lv.Stars, lv.IsDemon(), lv.ID, lv.CoinsVerified, lv.FeatureOrder, codec.LevelPasswordPlain(lv), scheduleID)
	return strings.Join([]string{codec.Encode(record, codec.Sep), codec.LevelDataHash(d.Data), meta}, "#"), nil
}
