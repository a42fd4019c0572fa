package persistence

import (
	"context"
	"net/netip"
	"time"

	"github.com/qdm12/ipget/internal/models"
)

// Database is the contract shared by all storage backends.
// Backends differ only in how they connect and describe themselves;
// Insert and SelectLatest behave identically across all of them.
type Database interface {
	// Insert appends one observation to the history and returns
	// the row id assigned by the backend. The insert is a single
	// statement so a failure leaves no partial row behind.
	Insert(ctx context.Context, t time.Time, address netip.Addr) (id int64, err error)
	// SelectLatest returns the observation with the maximum time,
	// ties broken by maximum id. ok is false when the table is
	// empty or when the latest row has no address recorded;
	// an empty table is not an error.
	SelectLatest(ctx context.Context) (observation models.Observation, ok bool, err error)
	// TableCreated reports whether opening the backend had to
	// create the observations table. It is the only signal
	// distinguishing a first run from an empty history.
	TableCreated() bool
	// String describes the backend for logging, without credentials.
	String() string
	Close() error
}
