package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

type row struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Open("file:" + filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := gdb.AutoMigrate(&row{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestInTxRollsBack(t *testing.T) {
	gdb := openMemory(t)
	boom := errors.New("boom")
	err := InTx(context.Background(), gdb, func(ctx context.Context) error {
		if err := Conn(ctx, gdb).Create(&row{Name: "a"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	var n int64
	gdb.Model(&row{}).Count(&n)
	if n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
}

func TestConnPrefersContextTx(t *testing.T) {
	gdb := openMemory(t)
	tx := gdb.Begin()
	defer tx.Rollback()
	ctx := WithTx(context.Background(), tx)
	if got, ok := TxFrom(ctx); !ok || got != tx {
		t.Fatal("transaction not found in context")
	}
	if err := Conn(ctx, gdb).Create(&row{Name: "b"}).Error; err != nil {
		t.Fatal(err)
	}
	var n int64
	tx.Model(&row{}).Count(&n)
	if n != 1 {
		t.Fatalf("rows in tx = %d, want 1", n)
	}
}

func TestDialector(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@db:5432/gdps?sslmode=disable", "postgres"},
		{"postgresql://u:p@db/gdps", "postgres"},
		{"mysql://u:p@tcp(db:3306)/gdps?parseTime=true", "mysql"},
		{"sqlite:///var/lib/gdps.db", "sqlite"},
		{"file:gdps.db", "sqlite"},
		{":memory:", "sqlite"},
	}
	for _, tt := range tests {
		if got := dialector(tt.dsn).Name(); got != tt.want {
			t.Errorf("dialector(%q) = %s, want %s", tt.dsn, got, tt.want)
		}
	}
}

func TestAfterCommit(t *testing.T) {
	gdb := openMemory(t)
	boom := errors.New("boom")

	var ran []string
	hook := func(name string) func(context.Context) {
		return func(ctx context.Context) {
			if _, ok := TxFrom(ctx); ok {
				t.Errorf("hook %s saw a finished transaction", name)
			}
			ran = append(ran, name)
		}
	}

	AfterCommit(context.Background(), hook("direct"))

	err := InTx(context.Background(), gdb, func(ctx context.Context) error {
		AfterCommit(ctx, hook("committed"))
		if len(ran) != 1 {
			t.Errorf("hook ran before commit: %v", ran)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	_ = InTx(context.Background(), gdb, func(ctx context.Context) error {
		AfterCommit(ctx, hook("rolled back"))
		return boom
	})

	want := []string{"direct", "committed"}
	if len(ran) != len(want) || ran[0] != want[0] || ran[1] != want[1] {
		t.Fatalf("ran = %v, want %v", ran, want)
	}
}

func TestAfterCommitWaitsForOuterTx(t *testing.T) {
	gdb := openMemory(t)
	ran := 0
	inc := func(context.Context) { ran++ }

	tx := gdb.Begin()
	ctx := WithTx(context.Background(), tx)
	if err := InTx(ctx, gdb, func(ctx context.Context) error {
		AfterCommit(ctx, inc)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if ran != 0 {
		t.Fatal("hook ran inside the outer transaction")
	}
	tx.Rollback()
	if ran != 0 {
		t.Fatal("hook ran after rollback")
	}

	tx = gdb.Begin()
	ctx = WithTx(context.Background(), tx)
	AfterCommit(ctx, inc)
	_ = InTx(ctx, gdb, func(ctx context.Context) error {
		AfterCommit(ctx, inc)
		return errors.New("savepoint rolled back")
	})
	if err := tx.Commit().Error; err != nil {
		t.Fatal(err)
	}
	Committed(ctx)
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	Committed(ctx)
	if ran != 1 {
		t.Fatal("hooks ran twice")
	}
}
