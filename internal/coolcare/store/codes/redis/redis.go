// Package redis stores verification codes in Redis so that every replica
// sees the same codes. Each phone has one hash key that Redis expires on
// its own at the code's expiry time.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "coolcare:vcode:"

// consumeScript deletes the key only when the stored fingerprint matches,
// returning {created, expires}. Running it as one script makes compare and
// delete a single step.
var consumeScript = goredis.NewScript(`
local v = redis.call('HMGET', KEYS[1], 'hash', 'created', 'expires')
if v[1] == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return {v[2], v[3]}
end
return false
`)

type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix overrides the key prefix.
	Prefix string
}

type Store struct {
	client goredis.UniversalClient
	prefix string
}

var _ store.VerificationCodes = (*Store)(nil)

// New connects to a single Redis node.
func New(opts Options) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Prefix)
}

// NewWithClient wraps an existing client (single node or cluster).
func NewWithClient(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(phone string) string { return s.prefix + phone }

func (s *Store) ReplaceVerificationCode(ctx context.Context, c domain.VerificationCode) error {
	key := s.key(c.Phone)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"hash", c.CodeHash,
			"created", strconv.FormatInt(c.CreatedAt.UnixNano(), 10),
			"expires", strconv.FormatInt(c.ExpiresAt.UnixNano(), 10),
		)
		pipe.PExpireAt(ctx, key, c.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: replace code: %w", err)
	}
	return nil
}

func (s *Store) ConsumeVerificationCode(ctx context.Context, phone, codeHash string) (domain.VerificationCode, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.key(phone)}, codeHash).StringSlice()
	if errors.Is(err, goredis.Nil) {
		return domain.VerificationCode{}, store.ErrNotFound
	}
	if err != nil {
		return domain.VerificationCode{}, fmt.Errorf("redis: consume code: %w", err)
	}
	if len(res) != 2 {
		return domain.VerificationCode{}, fmt.Errorf("redis: consume code: unexpected reply of %d items", len(res))
	}

	created, err := parseNanos(res[0])
	if err != nil {
		return domain.VerificationCode{}, err
	}
	expires, err := parseNanos(res[1])
	if err != nil {
		return domain.VerificationCode{}, err
	}
	return domain.VerificationCode{
		Phone:     phone,
		CodeHash:  codeHash,
		CreatedAt: created,
		ExpiresAt: expires,
	}, nil
}

// DeleteExpiredVerificationCodes is a no-op: Redis expires keys itself.
func (s *Store) DeleteExpiredVerificationCodes(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func parseNanos(v string) (time.Time, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis: decode timestamp %q: %w", v, err)
	}
	return time.Unix(0, n).UTC(), nil
}
