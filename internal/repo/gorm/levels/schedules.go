package levelsgorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// ScheduleRepo stores daily and weekly slots.
type ScheduleRepo struct{ db *gorm.DB }

var _ dom.LevelScheduleRepository = (*ScheduleRepo)(nil)

func NewScheduleRepo(gdb *gorm.DB) *ScheduleRepo { return &ScheduleRepo{db: gdb} }

// Current returns the slot of type t whose window contains now.
func (r *ScheduleRepo) Current(ctx context.Context, t dom.ScheduleType, now time.Time) (*dom.LevelSchedule, error) {
	var s dom.LevelSchedule
	err := db.Conn(ctx, r.db).
		Where("type = ? AND start_ts <= ? AND end_ts > ?", int(t), now, now).
		Order("start_ts DESC").
		First(&s).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &s, nil
}

func (r *ScheduleRepo) FromID(ctx context.Context, id int) (*dom.LevelSchedule, error) {
	var s dom.LevelSchedule
	if err := db.Conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &s, nil
}

func (r *ScheduleRepo) Create(ctx context.Context, s *dom.LevelSchedule) error {
	return db.Conn(ctx, r.db).Create(s).Error
}

// Past lists slots of type t that have started, newest first.
func (r *ScheduleRepo) Past(ctx context.Context, t dom.ScheduleType, now time.Time, page, pageSize int) ([]*dom.LevelSchedule, int64, error) {
	q := db.Conn(ctx, r.db).Model(&dom.LevelSchedule{}).Where("type = ? AND start_ts <= ?", int(t), now)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var arr []*dom.LevelSchedule
	if err := q.Order("start_ts DESC").Scopes(db.Paginate(page, pageSize)).Find(&arr).Error; err != nil {
		return nil, 0, err
	}
	return arr, total, nil
}

// Latest returns the slot of type t that ends last.
func (r *ScheduleRepo) Latest(ctx context.Context, t dom.ScheduleType) (*dom.LevelSchedule, error) {
	var s dom.LevelSchedule
	if err := db.Conn(ctx, r.db).Where("type = ?", int(t)).Order("end_ts DESC").First(&s).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &s, nil
}
