package sqlite

import (
	"context"
	"database/sql"

	"github.com/coolcare/coolcare/internal/coolcare/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx} }
func (t *txStore) Jobs() store.Jobs   { return &jobsRepo{db: t.tx} }
func (t *txStore) VerificationCodes() store.VerificationCodes {
	return &verificationCodesRepo{db: t.tx, replace: t.replaceInTx}
}
func (t *txStore) PushSubscriptions() store.PushSubscriptions {
	return &pushSubscriptionsRepo{db: t.tx}
}

// replaceInTx reuses the open transaction.
func (t *txStore) replaceInTx(_ context.Context, fn func(db dbtx) error) error {
	return fn(t.tx)
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
