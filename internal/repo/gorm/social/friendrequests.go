package socialgorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&dom.FriendRequest{}, &dom.UserRelationship{})
}

// FriendRequestRepo stores directed friend requests.
type FriendRequestRepo struct{ db *gorm.DB }

var _ dom.FriendRequestRepository = (*FriendRequestRepo)(nil)

func NewFriendRequestRepo(gdb *gorm.DB) *FriendRequestRepo { return &FriendRequestRepo{db: gdb} }

func (r *FriendRequestRepo) FromID(ctx context.Context, id int) (*dom.FriendRequest, error) {
	var fr dom.FriendRequest
	if err := db.Conn(ctx, r.db).Where("deleted = ?", false).First(&fr, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &fr, nil
}

// Between returns the live request from sender to recipient.
func (r *FriendRequestRepo) Between(ctx context.Context, senderID, recipientID int) (*dom.FriendRequest, error) {
	var fr dom.FriendRequest
	err := db.Conn(ctx, r.db).
		Where("sender_user_id = ? AND recipient_user_id = ? AND deleted = ?", senderID, recipientID, false).
		First(&fr).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &fr, nil
}

func (r *FriendRequestRepo) Create(ctx context.Context, fr *dom.FriendRequest) error {
	return db.Conn(ctx, r.db).Create(fr).Error
}

func (r *FriendRequestRepo) ListReceived(ctx context.Context, userID, page, pageSize int) ([]*dom.FriendRequest, int64, error) {
	return r.list(ctx, "recipient_user_id = ?", userID, page, pageSize)
}

func (r *FriendRequestRepo) ListSent(ctx context.Context, userID, page, pageSize int) ([]*dom.FriendRequest, int64, error) {
	return r.list(ctx, "sender_user_id = ?", userID, page, pageSize)
}

func (r *FriendRequestRepo) list(ctx context.Context, where string, userID, page, pageSize int) ([]*dom.FriendRequest, int64, error) {
	q := db.Conn(ctx, r.db).Model(&dom.FriendRequest{}).Where(where, userID).Where("deleted = ?", false)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var arr []*dom.FriendRequest
	if err := q.Order("post_ts DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&arr).Error; err != nil {
		return nil, 0, err
	}
	return arr, total, nil
}

func (r *FriendRequestRepo) CountNew(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.FriendRequest{}).
		Where("recipient_user_id = ? AND deleted = ? AND seen_ts IS NULL", userID, false).
		Count(&n).Error
	return n, err
}

func (r *FriendRequestRepo) MarkSeen(ctx context.Context, id int, at time.Time) error {
	return db.Conn(ctx, r.db).Model(&dom.FriendRequest{}).Where("id = ? AND seen_ts IS NULL", id).Update("seen_ts", at).Error
}

// Delete flags the request deleted.
func (r *FriendRequestRepo) Delete(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.FriendRequest{}).Where("id = ?", id).Update("deleted", true).Error
}
