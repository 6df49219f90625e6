package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSyncMessage announces that a period's snapshot changed. It carries
// only the period and revision; the worker fetches the full snapshot from
// the database.
type SnapshotSyncMessage struct {
	Period    string    `json:"period"` // "YYYY-MM"
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSnapshotSyncMessage creates a sync message for a period revision.
func NewSnapshotSyncMessage(period string, revision int64) *SnapshotSyncMessage {
	return &SnapshotSyncMessage{
		Period:    period,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotSyncMessageFromJSON creates a message from JSON bytes
func SnapshotSyncMessageFromJSON(data []byte) (*SnapshotSyncMessage, error) {
	var msg SnapshotSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
