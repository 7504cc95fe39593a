// Package idx generates the ULID identifiers used for users, jobs and
// push subscriptions. ULIDs sort by creation time, so "newest first"
// listings order on the primary key with every storage driver.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// The monotonic reader is not goroutine safe; mu guards it.
var (
	mu      sync.Mutex
	entropy = sync.OnceValue(func() *ulid.MonotonicEntropy {
		return ulid.Monotonic(rand.Reader, 0)
	})
)

// New returns an ID stamped with the current UTC time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID stamped with t. IDs minted within the same
// millisecond still increase.
func NewAt(t time.Time) ID {
	src := entropy()

	mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(t), src)
	mu.Unlock()

	return ID(u.String())
}

// Parse trims s and checks it is a strict ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if _, err := ulid.ParseStrict(s); s == "" || err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time is the embedded creation time, or the zero time when id is malformed.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// Compare orders IDs lexically, which is also creation order.
func Compare(a, b ID) int {
	return strings.Compare(string(a), string(b))
}
