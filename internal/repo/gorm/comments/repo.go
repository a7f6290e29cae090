package commentsgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&dom.LevelComment{}, &dom.UserComment{})
}

// LevelRepo stores comments posted on levels.
type LevelRepo struct{ db *gorm.DB }

var _ dom.LevelCommentRepository = (*LevelRepo)(nil)

func NewLevelRepo(gdb *gorm.DB) *LevelRepo { return &LevelRepo{db: gdb} }

func (r *LevelRepo) FromID(ctx context.Context, id int) (*dom.LevelComment, error) {
	var c dom.LevelComment
	if err := db.Conn(ctx, r.db).Where("deleted = ?", false).First(&c, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *LevelRepo) Create(ctx context.Context, c *dom.LevelComment) error {
	return db.Conn(ctx, r.db).Create(c).Error
}

func (r *LevelRepo) ListForLevel(ctx context.Context, levelID, page, pageSize int, byLikes bool) ([]*dom.LevelComment, int64, error) {
	return r.list(ctx, "level_id = ?", levelID, page, pageSize, byLikes)
}

func (r *LevelRepo) ListForUser(ctx context.Context, userID, page, pageSize int, byLikes bool) ([]*dom.LevelComment, int64, error) {
	return r.list(ctx, "user_id = ?", userID, page, pageSize, byLikes)
}

func (r *LevelRepo) list(ctx context.Context, where string, arg, page, pageSize int, byLikes bool) ([]*dom.LevelComment, int64, error) {
	q := db.Conn(ctx, r.db).Model(&dom.LevelComment{}).Where(where, arg).Where("deleted = ?", false)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := "post_ts DESC, id DESC"
	if byLikes {
		order = "likes DESC, id DESC"
	}
	var arr []*dom.LevelComment
	if err := q.Order(order).Scopes(db.Paginate(page, pageSize)).Find(&arr).Error; err != nil {
		return nil, 0, err
	}
	return arr, total, nil
}

// Delete flags the comment deleted.
func (r *LevelRepo) Delete(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.LevelComment{}).Where("id = ?", id).Update("deleted", true).Error
}

func (r *LevelRepo) AdjustLikes(ctx context.Context, id, delta int) error {
	return db.Conn(ctx, r.db).Model(&dom.LevelComment{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

// UserRepo stores comments posted on profiles.
type UserRepo struct{ db *gorm.DB }

var _ dom.UserCommentRepository = (*UserRepo)(nil)

func NewUserRepo(gdb *gorm.DB) *UserRepo { return &UserRepo{db: gdb} }

func (r *UserRepo) FromID(ctx context.Context, id int) (*dom.UserComment, error) {
	var c dom.UserComment
	if err := db.Conn(ctx, r.db).Where("deleted = ?", false).First(&c, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *UserRepo) Create(ctx context.Context, c *dom.UserComment) error {
	return db.Conn(ctx, r.db).Create(c).Error
}

func (r *UserRepo) ListForUser(ctx context.Context, userID, page, pageSize int) ([]*dom.UserComment, int64, error) {
	q := db.Conn(ctx, r.db).Model(&dom.UserComment{}).Where("user_id = ? AND deleted = ?", userID, false)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var arr []*dom.UserComment
	if err := q.Order("post_ts DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&arr).Error; err != nil {
		return nil, 0, err
	}
	return arr, total, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.UserComment{}).Where("id = ?", id).Update("deleted", true).Error
}

func (r *UserRepo) AdjustLikes(ctx context.Context, id, delta int) error {
	return db.Conn(ctx, r.db).Model(&dom.UserComment{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}
