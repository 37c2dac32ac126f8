// Package journal keeps an append-only record of network membership changes.
package journal

import (
	"context"

	"spikenet/internal/model"
)

// Store defines persistence operations for membership events.
type Store interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, event model.MembershipEvent) error
	// Events returns the events of one network in append order.
	Events(ctx context.Context, networkUID string) ([]model.MembershipEvent, bool, error)
	Reset(ctx context.Context, networkUID string) error
}
