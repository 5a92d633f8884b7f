// Package refs generates human-readable display references. They are not
// primary keys; rows are keyed by database-assigned ids.
package refs

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	BookingPrefix   = "BK"
	ComplaintPrefix = "CMP"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns prefix + "-" + a monotonic ULID.
func New(prefix string) string {
	mu.Lock()
	defer mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return prefix + "-" + id.String()
}

func Booking() string   { return New(BookingPrefix) }
func Complaint() string { return New(ComplaintPrefix) }
