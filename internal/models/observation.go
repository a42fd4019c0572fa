package models

import (
	"net/netip"
	"strconv"
	"time"
)

// Observation is one row of the public IP address history.
// Rows are append-only: they are never updated nor deleted.
type Observation struct {
	// ID is assigned by the storage backend and increases
	// monotonically with insertion order.
	ID int64
	// Time is the moment the address was read, in UTC.
	Time time.Time
	// Address is the public IPv4 or IPv6 address observed.
	Address netip.Addr
}

func (o Observation) String() string {
	return o.Address.String() + " at " + o.Time.Format(time.RFC3339) +
		" (row " + strconv.FormatInt(o.ID, 10) + ")"
}
