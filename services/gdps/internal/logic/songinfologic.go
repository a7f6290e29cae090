package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type SongInfoLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSongInfoLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SongInfoLogic {
	return &SongInfoLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SongInfoLogic) SongInfo(req *types.SongInfoRequest) (resp string, err error) {
	s, err := l.svcCtx.Services.Songs.Get(l.ctx, req.SongID, false)
	if err != nil {
		return "", err
	}
	return codec.Encode(codec.Song(s), codec.SongSep), nil
}
