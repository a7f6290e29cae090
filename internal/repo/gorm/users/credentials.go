package usersgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// CredentialRepo stores the append-only password records.
type CredentialRepo struct{ db *gorm.DB }

var _ dom.CredentialRepository = (*CredentialRepo)(nil)

func NewCredentialRepo(gdb *gorm.DB) *CredentialRepo { return &CredentialRepo{db: gdb} }

// FromUserID returns the active credential, the one with the highest id.
func (r *CredentialRepo) FromUserID(ctx context.Context, userID int) (*dom.UserCredential, error) {
	var c dom.UserCredential
	err := db.Conn(ctx, r.db).Where("user_id = ?", userID).Order("id DESC").First(&c).Error
	if err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *CredentialRepo) Create(ctx context.Context, c *dom.UserCredential) error {
	return db.Conn(ctx, r.db).Create(c).Error
}

func (r *CredentialRepo) Delete(ctx context.Context, id int) error {
	return db.Conn(ctx, r.db).Delete(&dom.UserCredential{}, id).Error
}

func (r *CredentialRepo) CountForUser(ctx context.Context, userID int, version dom.CredentialVersion) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&dom.UserCredential{}).
		Where("user_id = ? AND version = ?", userID, int(version)).
		Count(&n).Error
	return n, err
}
