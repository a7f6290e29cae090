package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type ScoresLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewScoresLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ScoresLogic {
	return &ScoresLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ScoresLogic) Scores(req *types.ScoresRequest) (resp string, err error) {
	board := service.BoardType(req.Type)
	switch board {
	case service.BoardTop, service.BoardCreators:
	case service.BoardRelative, service.BoardFriends:
		if svc.UserID(l.ctx) == 0 {
			return "", response.Failed
		}
	default:
		return "", response.Failed
	}
	ranked, err := l.svcCtx.Services.Leaderboards.Scores(l.ctx, svc.UserID(l.ctx), board, clampCount(req.Count, maxPageSize))
	if err != nil {
		return "", err
	}
	if len(ranked) == 0 {
		return "-1", nil
	}
	rows := make([]string, len(ranked))
	for i, r := range ranked {
		rows[i] = codec.Encode(codec.ScoreEntry(r.User, r.Rank), codec.Sep)
	}
	return strings.Join(rows, codec.ListSep), nil
}
