package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type GetLevelsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetLevelsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetLevelsLogic {
	return &GetLevelsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetLevelsLogic) GetLevels(req *types.GetLevelsRequest) (resp string, err error) {
	q := searchQuery(req)
	page, err := l.svcCtx.Services.Levels.Search(l.ctx, svc.UserID(l.ctx), q)
	if err != nil {
		return "", err
	}
	if len(page.Levels) == 0 {
		return "-1", nil
	}

	levels := make([]codec.Record, len(page.Levels))
	hashes := make([]codec.SearchHashEntry, len(page.Levels))
	for i, lv := range page.Levels {
		levels[i] = codec.Level(lv)
		hashes[i] = codec.SearchHashEntry{ID: lv.ID, Stars: lv.Stars, CoinsVerified: lv.CoinsVerified}
	}
	users := make([]string, len(page.Users))
	for i, u := range page.Users {
		users[i] = codec.LevelUser(u)
	}
	songs := make([]codec.Record, len(page.Songs))
	for i, s := range page.Songs {
		songs[i] = codec.Song(s)
	}
	return strings.Join([]string{
		codec.EncodeList(levels, codec.Sep, codec.ListSep),
		strings.Join(users, codec.ListSep),
		codec.EncodeList(songs, codec.SongSep, codec.SongListSep),
		codec.Page(page.Total, req.Page, levelPageSize),
		codec.SearchHash(hashes),
	}, "#"), nil
}
