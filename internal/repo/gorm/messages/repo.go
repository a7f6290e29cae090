package messagesgorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// Repo stores one-to-one messages. Each side has its own deleted flag.
type Repo struct{ db *gorm.DB }

var _ dom.MessageRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error { return gdb.AutoMigrate(&dom.Message{}) }

func New(gdb *gorm.DB) *Repo { return &Repo{db: gdb} }

func (r *Repo) FromID(ctx context.Context, id int) (*dom.Message, error) {
	var m dom.Message
	if err := db.Conn(ctx, r.db).First(&m, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &m, nil
}

func (r *Repo) Create(ctx context.Context, m *dom.Message) error {
	return db.Conn(ctx, r.db).Create(m).Error
}

func (r *Repo) ListReceived(ctx context.Context, userID, page, pageSize int) ([]*dom.Message, int64, error) {
	return r.list(ctx, "recipient_user_id = ? AND recipient_deleted = ?", userID, page, pageSize)
}

func (r *Repo) ListSent(ctx context.Context, userID, page, pageSize int) ([]*dom.Message, int64, error) {
	return r.list(ctx, "sender_user_id = ? AND sender_deleted = ?", userID, page, pageSize)
}

func (r *Repo) list(ctx context.Context, where string, userID, page, pageSize int) ([]*dom.Message, int64, error) {
	q := db.Conn(ctx, r.db).Model(&dom.Message{}).Where(where, userID, false)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var arr []*dom.Message
	if err := q.Order("post_ts DESC, id DESC").Scopes(db.Paginate(page, pageSize)).Find(&arr).Error; err != nil {
		return nil, 0, err
	}
	return arr, total, nil
}

// CountNew counts unseen messages still in the recipient's inbox.
func (r *Repo) CountNew(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.Message{}).
		Where("recipient_user_id = ? AND recipient_deleted = ? AND seen_ts IS NULL", userID, false).
		Count(&n).Error
	return n, err
}

func (r *Repo) MarkSeen(ctx context.Context, id int, at time.Time) error {
	return db.Conn(ctx, r.db).Model(&dom.Message{}).Where("id = ? AND seen_ts IS NULL", id).Update("seen_ts", at).Error
}

func (r *Repo) DeleteForSender(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.Message{}).Where("id = ?", id).Update("sender_deleted", true).Error
}

func (r *Repo) DeleteForRecipient(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Model(&dom.Message{}).Where("id = ?", id).Update("recipient_deleted", true).Error
}
