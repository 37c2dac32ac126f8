package journal

import (
	"encoding/json"
	"errors"

	"spikenet/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeEvent(e model.MembershipEvent) ([]byte, error) {
	if err := checkVersion(e.VersionedRecord); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

func DecodeEvent(data []byte) (model.MembershipEvent, error) {
	var event model.MembershipEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return model.MembershipEvent{}, err
	}
	if err := checkVersion(event.VersionedRecord); err != nil {
		return model.MembershipEvent{}, err
	}
	return event, nil
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
