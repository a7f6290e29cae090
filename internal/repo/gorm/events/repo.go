package eventsgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// Repo appends processed control-plane commands to the audit table.
type Repo struct{ db *gorm.DB }

var _ dom.ControlEventRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error { return gdb.AutoMigrate(&dom.ControlEvent{}) }

func New(gdb *gorm.DB) *Repo { return &Repo{db: gdb} }

func (r *Repo) Record(ctx context.Context, e *dom.ControlEvent) error {
	return db.Conn(ctx, r.db).Create(e).Error
}

// Recent returns the newest events, optionally filtered by channel.
func (r *Repo) Recent(ctx context.Context, channel string, limit int) ([]*dom.ControlEvent, error) {
	q := db.Conn(ctx, r.db).Order("id DESC")
	if channel != "" {
		q = q.Where("channel = ?", channel)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var arr []*dom.ControlEvent
	err := q.Find(&arr).Error
	return arr, err
}
