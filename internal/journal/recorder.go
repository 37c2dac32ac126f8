package journal

import (
	"context"
	"sync/atomic"
	"time"

	"spikenet/internal/core"
	"spikenet/internal/logging"
	"spikenet/internal/model"
	"spikenet/internal/uid"
)

// Recorder turns network membership notifications into stored events. Store failures are
// logged and never reach the network operation that triggered them.
type Recorder struct {
	store  Store
	logger *logging.Logger
	seq    atomic.Uint64
	now    func() time.Time
}

func NewRecorder(store Store, logger *logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Recorder{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *Recorder) EntityAdded(network uid.UID, entity core.Entity) {
	r.record(network, entity, model.OpAdded)
}

func (r *Recorder) EntityRemoved(network uid.UID, entity core.Entity) {
	r.record(network, entity, model.OpRemoved)
}

// Event builds the record for one membership change without storing it.
func (r *Recorder) Event(network uid.UID, entity core.Entity, op model.MembershipOp) model.MembershipEvent {
	event := model.MembershipEvent{
		VersionedRecord: currentVersion(),
		Seq:             r.seq.Add(1),
		NetworkUID:      network.String(),
		EntityUID:       entity.UID().String(),
		Kind:            entity.Kind().String(),
		TypeTag:         entity.TypeTag(),
		Size:            entity.Size(),
		Op:              op,
		At:              r.now(),
	}
	if conn, ok := entity.(core.Connection); ok {
		event.PresynapticUID = conn.PresynapticUID().String()
		event.PostsynapticUID = conn.PostsynapticUID().String()
	}
	return event
}

func (r *Recorder) record(network uid.UID, entity core.Entity, op model.MembershipOp) {
	if r.store == nil {
		return
	}
	event := r.Event(network, entity, op)
	if err := r.store.Append(context.Background(), event); err != nil {
		r.logger.Error("journal append failed",
			"network_uid", event.NetworkUID,
			"uid", event.EntityUID,
			"op", string(op),
			"error", err,
		)
	}
}
