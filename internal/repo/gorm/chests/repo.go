package chestsgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// Repo is the append-only claim log.
type Repo struct{ db *gorm.DB }

var _ dom.DailyChestRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error { return gdb.AutoMigrate(&dom.DailyChest{}) }

func New(gdb *gorm.DB) *Repo { return &Repo{db: gdb} }

func (r *Repo) Latest(ctx context.Context, userID int, t dom.ChestType) (*dom.DailyChest, error) {
	var c dom.DailyChest
	err := db.Conn(ctx, r.db).
		Where("user_id = ? AND type = ?", userID, int(t)).
		Order("claimed_ts DESC, id DESC").
		First(&c).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *Repo) Count(ctx context.Context, userID int, t dom.ChestType) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.DailyChest{}).Where("user_id = ? AND type = ?", userID, int(t)).Count(&n).Error
	return n, err
}

// TotalMana sums the mana of every claim the user made.
func (r *Repo) TotalMana(ctx context.Context, userID int) (int, error) {
	var total int
	err := db.Conn(ctx, r.db).Model(&dom.DailyChest{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(mana), 0)").
		Scan(&total).Error
	return total, err
}

func (r *Repo) Create(ctx context.Context, c *dom.DailyChest) error {
	return db.Conn(ctx, r.db).Create(c).Error
}
