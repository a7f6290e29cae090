package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UploadLevelLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadLevelLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadLevelLogic {
	return &UploadLevelLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadLevelLogic) UploadLevel(req *types.UploadLevelRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	desc, err := decodeText(req.LevelDesc)
	if err != nil {
		return "", err
	}
	up := service.LevelUpload{
		ID:             req.LevelID,
		Name:           req.LevelName,
		Description:    desc,
		Version:        req.LevelVersion,
		Length:         dom.LevelLength(req.LevelLength),
		TwoPlayer:      req.TwoPlayer != 0,
		Unlisted:       req.Unlisted != 0,
		RenderStr:      req.ExtraString,
		GameVersion:    req.GameVersion,
		BinaryVersion:  req.BinaryVersion,
		OriginalID:     req.Original,
		RequestedStars: req.RequestedStars,
		LowDetailMode:  req.LowDetailMode != 0,
		ObjectCount:    req.Objects,
		Coins:          req.Coins,
		CopyPassword:   req.Password,
		Data:           req.LevelString,
	}
	if req.SongID > 0 {
		up.CustomSongID = req.SongID
	} else {
		up.OfficialSongID = req.AudioTrack
	}
	lv, err := l.svcCtx.Services.Levels.Upload(l.ctx, u.ID, up)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(lv.ID), nil
}
