package db

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type txKey struct{}

type hooksKey struct{}

// commitHooks collects the writes to other stores that must only happen once
// the transaction they depend on has committed.
type commitHooks struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

func (h *commitHooks) add(fns ...func(context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fns...)
}

func (h *commitHooks) take() []func(context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fns := h.fns
	h.fns = nil
	return fns
}

func hooksFrom(ctx context.Context) (*commitHooks, bool) {
	h, ok := ctx.Value(hooksKey{}).(*commitHooks)
	return h, ok && h != nil
}

// WithTx returns a context carrying tx. Repositories resolve their handle
// through Conn so that every statement of a request joins its transaction.
// The context also collects AfterCommit hooks; whoever commits tx runs them
// with Committed and drops them on rollback.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	ctx = context.WithValue(ctx, txKey{}, tx)
	return context.WithValue(ctx, hooksKey{}, &commitHooks{})
}

// TxFrom returns the transaction stored in ctx, if any.
func TxFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// Conn returns the request transaction when present and fallback otherwise,
// bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := TxFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// AfterCommit defers fn until the transaction carried by ctx commits. Outside
// a transaction fn runs at once.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if h, ok := hooksFrom(ctx); ok {
		h.add(fn)
		return
	}
	fn(ctx)
}

// Committed runs, in order, the hooks collected under ctx. Call it once the
// transaction of ctx has committed.
func Committed(ctx context.Context) {
	h, ok := hooksFrom(ctx)
	if !ok {
		return
	}
	fns := h.take()
	if len(fns) == 0 {
		return
	}
	ctx = context.WithValue(ctx, txKey{}, (*gorm.DB)(nil))
	ctx = context.WithValue(ctx, hooksKey{}, (*commitHooks)(nil))
	for _, fn := range fns {
		fn(ctx)
	}
}

// InTx runs fn inside a transaction. When ctx already carries one, fn joins
// it through a savepoint instead of opening a second connection, and its
// hooks wait for the outer commit.
func InTx(ctx context.Context, fallback *gorm.DB, fn func(ctx context.Context) error) error {
	var inner context.Context
	err := Conn(ctx, fallback).Transaction(func(tx *gorm.DB) error {
		inner = WithTx(ctx, tx)
		return fn(inner)
	})
	if err != nil {
		return err
	}
	if parent, ok := hooksFrom(ctx); ok {
		h, _ := hooksFrom(inner)
		parent.add(h.take()...)
		return nil
	}
	Committed(inner)
	return nil
}
