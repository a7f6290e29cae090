package levelsgorm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

const batchSize = 500

// Repo persists levels and mirrors every write into the level index.
type Repo struct {
	db    *gorm.DB
	index dom.LevelIndex
}

var _ dom.LevelRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&dom.Level{}, &dom.LevelSchedule{}, &dom.Song{})
}

func New(gdb *gorm.DB, index dom.LevelIndex) *Repo { return &Repo{db: gdb, index: index} }

func (r *Repo) conn(ctx context.Context) *gorm.DB { return db.Conn(ctx, r.db) }

// mirror copies l into the index once the surrounding transaction commits.
func (r *Repo) mirror(ctx context.Context, l *dom.Level) {
	if r.index == nil {
		return
	}
	db.AfterCommit(ctx, func(ctx context.Context) {
		var err error
		if l.Deleted {
			err = r.index.DeleteLevel(ctx, l.ID)
		} else {
			err = r.index.UpsertLevels(ctx, l)
		}
		if err != nil {
			logx.WithContext(ctx).Errorf("level index sync %d: %v", l.ID, err)
		}
	})
}

func (r *Repo) FromID(ctx context.Context, id int) (*dom.Level, error) {
	var l dom.Level
	if err := r.conn(ctx).First(&l, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &l, nil
}

// FromIDs returns the levels in the order of ids; unknown ids are skipped.
func (r *Repo) FromIDs(ctx context.Context, ids []int) ([]*dom.Level, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var arr []*dom.Level
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&arr).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]*dom.Level, len(arr))
	for _, l := range arr {
		byID[l.ID] = l
	}
	out := make([]*dom.Level, 0, len(arr))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, l *dom.Level) error {
	if err := r.conn(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create level: %w", err)
	}
	r.mirror(ctx, l)
	return nil
}

// Update writes only the supplied columns and returns the fresh row.
func (r *Repo) Update(ctx context.Context, id int, upd dom.LevelUpdate) (*dom.Level, error) {
	cols := updateColumns(upd)
	if len(cols) > 0 {
		if err := r.conn(ctx).Model(&dom.Level{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return nil, fmt.Errorf("update level %d: %w", id, err)
		}
	}
	l, err := r.FromID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		r.mirror(ctx, l)
	}
	return l, nil
}

func (r *Repo) IncrementDownloads(ctx context.Context, id int) error {
	return r.conn(ctx).Model(&dom.Level{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error
}

func (r *Repo) AdjustLikes(ctx context.Context, id, delta int) error {
	err := r.conn(ctx).Model(&dom.Level{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
	if err != nil {
		return err
	}
	if l, err := r.FromID(ctx, id); err == nil {
		r.mirror(ctx, l)
	}
	return nil
}

// Search queries the index. A numeric free-text query on the first page also
// looks the identity up directly and puts that level first.
func (r *Repo) Search(ctx context.Context, q dom.LevelSearchQuery) (dom.SearchResult, error) {
	if r.index == nil {
		return dom.SearchResult{}, errors.New("level index not configured")
	}
	var direct *dom.Level
	if q.Type == dom.SearchQuery && q.Page == 0 {
		if id, err := strconv.Atoi(strings.TrimSpace(q.Query)); err == nil && id > 0 {
			l, err := r.FromID(ctx, id)
			switch {
			case err == nil && !l.Deleted:
				direct = l
			case err != nil && !errors.Is(err, dom.ErrNotFound):
				return dom.SearchResult{}, err
			}
		}
	}
	if direct != nil && q.PageSize > 1 {
		q.PageSize--
	}
	res, err := r.index.SearchLevels(ctx, q)
	if err != nil {
		return dom.SearchResult{}, err
	}
	if direct == nil {
		return res, nil
	}
	ids := make([]int, 0, len(res.IDs)+1)
	ids = append(ids, direct.ID)
	present := false
	for _, id := range res.IDs {
		if id == direct.ID {
			present = true
			continue
		}
		ids = append(ids, id)
	}
	if !present {
		res.Total++
	}
	res.IDs = ids
	return res, nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&dom.Level{}).Where("deleted = ?", false).Count(&n).Error
	return n, err
}

// Each walks every level, deleted ones included, in id order.
func (r *Repo) Each(ctx context.Context, fn func(l *dom.Level) error) error {
	var batch []*dom.Level
	return r.conn(ctx).Order("id").FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		for _, l := range batch {
			if err := fn(l); err != nil {
				return err
			}
		}
		return nil
	}).Error
}

func updateColumns(u dom.LevelUpdate) map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.UserID != nil {
		m["user_id"] = *u.UserID
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	if u.CustomSongID != nil {
		m["custom_song_id"] = *u.CustomSongID
	}
	if u.OfficialSongID != nil {
		m["official_song_id"] = *u.OfficialSongID
	}
	if u.Version != nil {
		m["version"] = *u.Version
	}
	if u.Length != nil {
		m["length"] = int(*u.Length)
	}
	if u.TwoPlayer != nil {
		m["two_player"] = *u.TwoPlayer
	}
	if u.Publicity != nil {
		m["publicity"] = int(*u.Publicity)
	}
	if u.RenderStr != nil {
		m["render_str"] = *u.RenderStr
	}
	if u.GameVersion != nil {
		m["game_version"] = *u.GameVersion
	}
	if u.BinaryVersion != nil {
		m["binary_version"] = *u.BinaryVersion
	}
	if u.UpdateTs != nil {
		m["update_ts"] = *u.UpdateTs
	}
	if u.OriginalID != nil {
		m["original_id"] = *u.OriginalID
	}
	if u.Stars != nil {
		m["stars"] = *u.Stars
	}
	if u.Difficulty != nil {
		m["difficulty"] = int(*u.Difficulty)
	}
	if u.DemonDifficulty != nil {
		if d := *u.DemonDifficulty; d != nil {
			m["demon_difficulty"] = int(*d)
		} else {
			m["demon_difficulty"] = nil
		}
	}
	if u.Coins != nil {
		m["coins"] = *u.Coins
	}
	if u.CoinsVerified != nil {
		m["coins_verified"] = *u.CoinsVerified
	}
	if u.RequestedStars != nil {
		m["requested_stars"] = *u.RequestedStars
	}
	if u.FeatureOrder != nil {
		m["feature_order"] = *u.FeatureOrder
	}
	if u.SearchFlags != nil {
		m["search_flags"] = int(*u.SearchFlags)
	}
	if u.LowDetailMode != nil {
		m["low_detail_mode"] = *u.LowDetailMode
	}
	if u.ObjectCount != nil {
		m["object_count"] = *u.ObjectCount
	}
	if u.BuildingTime != nil {
		m["building_time"] = *u.BuildingTime
	}
	if u.CopyPassword != nil {
		m["copy_password"] = *u.CopyPassword
	}
	if u.UpdateLocked != nil {
		m["update_locked"] = *u.UpdateLocked
	}
	if u.Deleted != nil {
		m["deleted"] = *u.Deleted
	}
	return m
}
