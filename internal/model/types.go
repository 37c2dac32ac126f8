package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type MembershipOp string

const (
	OpAdded   MembershipOp = "added"
	OpRemoved MembershipOp = "removed"
)

// MembershipEvent records one committed add or remove on a network. Endpoint UIDs are only
// set for projections.
type MembershipEvent struct {
	VersionedRecord
	Seq             uint64       `json:"seq"`
	NetworkUID      string       `json:"network_uid"`
	EntityUID       string       `json:"entity_uid"`
	Kind            string       `json:"kind"`
	TypeTag         string       `json:"type_tag"`
	Size            int          `json:"size"`
	Op              MembershipOp `json:"op"`
	PresynapticUID  string       `json:"presynaptic_uid,omitempty"`
	PostsynapticUID string       `json:"postsynaptic_uid,omitempty"`
	At              time.Time    `json:"at"`
}
