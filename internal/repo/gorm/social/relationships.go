package socialgorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// RelationshipRepo stores friendship and block edges, one row per direction.
type RelationshipRepo struct{ db *gorm.DB }

var _ dom.RelationshipRepository = (*RelationshipRepo)(nil)

func NewRelationshipRepo(gdb *gorm.DB) *RelationshipRepo { return &RelationshipRepo{db: gdb} }

func (r *RelationshipRepo) Between(ctx context.Context, t dom.RelationshipType, userID, targetID int) (*dom.UserRelationship, error) {
	var rel dom.UserRelationship
	err := db.Conn(ctx, r.db).
		Where("type = ? AND user_id = ? AND target_user_id = ? AND deleted = ?", int(t), userID, targetID, false).
		First(&rel).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &rel, nil
}

func (r *RelationshipRepo) Create(ctx context.Context, rel *dom.UserRelationship) error {
	return db.Conn(ctx, r.db).Create(rel).Error
}

// ListForUser returns every live edge of type t held by userID, newest first.
func (r *RelationshipRepo) ListForUser(ctx context.Context, t dom.RelationshipType, userID int) ([]*dom.UserRelationship, error) {
	var arr []*dom.UserRelationship
	err := db.Conn(ctx, r.db).
		Where("type = ? AND user_id = ? AND deleted = ?", int(t), userID, false).
		Order("post_ts DESC, id DESC").
		Find(&arr).Error
	return arr, err
}

func (r *RelationshipRepo) CountNew(ctx context.Context, t dom.RelationshipType, userID int) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.UserRelationship{}).
		Where("type = ? AND user_id = ? AND deleted = ? AND seen_ts IS NULL", int(t), userID, false).
		Count(&n).Error
	return n, err
}

func (r *RelationshipRepo) MarkAllSeen(ctx context.Context, t dom.RelationshipType, userID int, at time.Time) error {
	return db.Conn(ctx, r.db).Model(&dom.UserRelationship{}).
		Where("type = ? AND user_id = ? AND deleted = ? AND seen_ts IS NULL", int(t), userID, false).
		Update("seen_ts", at).Error
}

// Delete flags one edge deleted.
func (r *RelationshipRepo) Delete(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.UserRelationship{}).Where("id = ?", id).Update("deleted", true).Error
}

// CountFor counts live edges where userID is the holder, or the target when asTarget is set.
func (r *RelationshipRepo) CountFor(ctx context.Context, t dom.RelationshipType, userID int, asTarget bool) (int64, error) {
	col := "user_id"
	if asTarget {
		col = "target_user_id"
	}
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.UserRelationship{}).
		Where("type = ? AND deleted = ?", int(t), false).
		Where(col+" = ?", userID).
		Count(&n).Error
	return n, err
}
