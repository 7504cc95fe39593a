package store

import (
	"context"
	"errors"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Sub-repositories are reached through methods so
// a Tx-scoped Store can hand out repos bound to the transaction.
type Store interface {
	Users() Users
	Jobs() Jobs
	VerificationCodes() VerificationCodes
	PushSubscriptions() PushSubscriptions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByPhone looks up by normalized phone.
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// CreateUser inserts a new user. ErrAlreadyExists if the phone is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes the mutable fields (name, email, role, is_active,
	// is_verified, updated_at) of an existing user.
	UpdateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// JobOrder selects the sort order of a job listing.
type JobOrder int

const (
	// ScheduledDesc is newest appointment first, unscheduled last.
	ScheduledDesc JobOrder = iota
	// ScheduledAsc is earliest appointment first, ties broken by id.
	ScheduledAsc
)

// JobFilter narrows a job listing. Zero values mean no restriction.
type JobFilter struct {
	UserID string
	Status string
	// From and To bound scheduled_at to [From, To). Either bound excludes
	// unscheduled jobs.
	From  *time.Time
	To    *time.Time
	Order JobOrder
}

type Jobs interface {
	CreateJob(ctx context.Context, j domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, error)

	// UpdateJob overwrites every mutable column of an existing job.
	UpdateJob(ctx context.Context, j domain.Job) error
	DeleteJob(ctx context.Context, id string) error
	ListJobs(ctx context.Context, f JobFilter) ([]domain.Job, error)

	// ListReminderCandidates returns open jobs scheduled in [from, to] that
	// have not been reminded yet, earliest first.
	ListReminderCandidates(ctx context.Context, from, to time.Time) ([]domain.Job, error)

	// MarkJobReminded sets reminded_at if it is still unset. It reports
	// whether this call did the marking.
	MarkJobReminded(ctx context.Context, id string, at time.Time) (bool, error)
}

// VerificationCodes is the storage behind phone verification. Besides the
// relational drivers it is implemented by the memory and redis code stores.
type VerificationCodes interface {
	// ReplaceVerificationCode atomically removes every code for c.Phone and
	// stores c.
	ReplaceVerificationCode(ctx context.Context, c domain.VerificationCode) error

	// ConsumeVerificationCode atomically deletes and returns the record that
	// matches phone and codeHash, expired or not. ErrNotFound when nothing
	// matches. Of concurrent callers at most one receives the record.
	ConsumeVerificationCode(ctx context.Context, phone, codeHash string) (domain.VerificationCode, error)

	// DeleteExpiredVerificationCodes removes codes with expires_at <= now
	// and returns how many were removed.
	DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error)
}

type PushSubscriptions interface {
	// UpsertPushSubscription stores s, replacing the user's existing
	// subscription if any. The stored ID is kept on replace.
	UpsertPushSubscription(ctx context.Context, s domain.PushSubscription) error
	GetPushSubscriptionByUser(ctx context.Context, userID string) (domain.PushSubscription, error)

	// DeletePushSubscription removes the user's subscription, typically
	// after the push service reported it gone.
	DeletePushSubscription(ctx context.Context, userID string) error
}
