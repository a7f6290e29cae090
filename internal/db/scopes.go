package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/ports"
)

// Paginate selects one zero-based page of size rows.
func Paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if page < 0 {
			page = 0
		}
		if size <= 0 {
			return q
		}
		return q.Offset(page * size).Limit(size)
	}
}

// Translate maps gorm.ErrRecordNotFound onto ports.ErrNotFound and leaves
// other errors untouched.
func Translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}
