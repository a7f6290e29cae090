package likesgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// Repo stores one like or dislike per user and target.
type Repo struct{ db *gorm.DB }

var _ dom.LikeRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error { return gdb.AutoMigrate(&dom.LikeInteraction{}) }

func New(gdb *gorm.DB) *Repo { return &Repo{db: gdb} }

func (r *Repo) Find(ctx context.Context, target dom.LikeTarget, targetID, userID int) (*dom.LikeInteraction, error) {
	var l dom.LikeInteraction
	err := db.Conn(ctx, r.db).
		Where("target_type = ? AND target_id = ? AND user_id = ?", int(target), targetID, userID).
		First(&l).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &l, nil
}

func (r *Repo) Create(ctx context.Context, l *dom.LikeInteraction) error {
	return db.Conn(ctx, r.db).Create(l).Error
}

// Sum adds up every value recorded against the target.
func (r *Repo) Sum(ctx context.Context, target dom.LikeTarget, targetID int) (int, error) {
	var total int
	err := db.Conn(ctx, r.db).Model(&dom.LikeInteraction{}).
		Where("target_type = ? AND target_id = ?", int(target), targetID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
