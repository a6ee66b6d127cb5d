package storage

import "context"

// Status is the explicit outcome of a single tier attempt. The gateway
// branches on it instead of treating tier failures as control-flow
// exceptions.
type Status int

const (
	// StatusOK means the tier handled the request. A read may still carry a
	// nil payload when the collection has never been written.
	StatusOK Status = iota
	// StatusUnavailable means the tier cannot serve at all (no directory
	// granted, backing store gone). A normal condition, not an error.
	StatusUnavailable
	// StatusFailed means the tier attempted the request and failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

// Tier is one storage backend for named collections. Payloads are opaque
// serialized collections; tiers never interpret them.
type Tier interface {
	Name() string
	Read(ctx context.Context, collection string) ([]byte, Status, error)
	Write(ctx context.Context, collection string, payload []byte) (Status, error)
}
