package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spikenet/internal/model"
)

func testEvent(network string, seq uint64, op model.MembershipOp) model.MembershipEvent {
	return model.MembershipEvent{
		VersionedRecord: currentVersion(),
		Seq:             seq,
		NetworkUID:      network,
		EntityUID:       "entity-1",
		Kind:            "population",
		TypeTag:         "BLIFATNeuron",
		Size:            5,
		Op:              op,
		At:              time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreAppendAndEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	require.NoError(t, store.Append(ctx, testEvent("net-1", 1, model.OpAdded)))
	require.NoError(t, store.Append(ctx, testEvent("net-1", 2, model.OpRemoved)))
	require.NoError(t, store.Append(ctx, testEvent("net-2", 3, model.OpAdded)))

	events, ok, err := store.Events(ctx, "net-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, events, 2)
	assert.Equal(t, model.OpAdded, events[0].Op)
	assert.Equal(t, model.OpRemoved, events[1].Op)

	events[0].Op = "mutated"
	again, _, err := store.Events(ctx, "net-1")
	require.NoError(t, err)
	assert.Equal(t, model.OpAdded, again[0].Op, "Events must return a copy")

	_, ok, err = store.Events(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Append(ctx, testEvent("net-1", 1, model.OpAdded)))

	require.NoError(t, store.Reset(ctx, "net-1"))
	_, ok, err := store.Events(ctx, "net-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	assert.Error(t, store.Append(ctx, testEvent("net-1", 1, model.OpAdded)))
	_, _, err := store.Events(ctx, "net-1")
	assert.Error(t, err)
	assert.Error(t, store.Reset(ctx, "net-1"))
}

func TestMemoryStoreRejectsVersionMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	event := testEvent("net-1", 1, model.OpAdded)
	event.SchemaVersion = 99
	assert.ErrorIs(t, store.Append(ctx, event), ErrVersionMismatch)
}

func TestCodecRoundTripAndVersionCheck(t *testing.T) {
	event := testEvent("net-1", 7, model.OpAdded)
	event.PresynapticUID = "pre"
	payload, err := EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)

	_, err = DecodeEvent([]byte(`{"schema_version":2,"codec_version":1}`))
	assert.ErrorIs(t, err, ErrVersionMismatch)
	_, err = DecodeEvent([]byte(`{`))
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewStore("", "")
	require.NoError(t, err)
	assert.NotNil(t, store)

	store, err = NewStore(StoreNone, "")
	require.NoError(t, err)
	assert.Nil(t, store)

	_, err = NewStore("postgres", "")
	assert.Error(t, err)

	assert.NoError(t, CloseIfSupported(NewMemoryStore()))
}
