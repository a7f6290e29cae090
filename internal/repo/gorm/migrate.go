// Package gormrepo groups the relational repositories.
package gormrepo

import (
	"gorm.io/gorm"

	chestsgorm "github.com/gdps-go/gdps/internal/repo/gorm/chests"
	commentsgorm "github.com/gdps-go/gdps/internal/repo/gorm/comments"
	eventsgorm "github.com/gdps-go/gdps/internal/repo/gorm/events"
	levelsgorm "github.com/gdps-go/gdps/internal/repo/gorm/levels"
	likesgorm "github.com/gdps-go/gdps/internal/repo/gorm/likes"
	messagesgorm "github.com/gdps-go/gdps/internal/repo/gorm/messages"
	socialgorm "github.com/gdps-go/gdps/internal/repo/gorm/social"
	usersgorm "github.com/gdps-go/gdps/internal/repo/gorm/users"
)

// AutoMigrate creates or updates every table.
func AutoMigrate(gdb *gorm.DB) error {
	steps := []func(*gorm.DB) error{
		usersgorm.AutoMigrate,
		levelsgorm.AutoMigrate,
		commentsgorm.AutoMigrate,
		messagesgorm.AutoMigrate,
		socialgorm.AutoMigrate,
		likesgorm.AutoMigrate,
		chestsgorm.AutoMigrate,
		eventsgorm.AutoMigrate,
	}
	for _, step := range steps {
		if err := step(gdb); err != nil {
			return err
		}
	}
	return nil
}
