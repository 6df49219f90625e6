package amqp

import (
	"testing"
	"time"
)

func TestNewSnapshotSyncMessage(t *testing.T) {
	msg := NewSnapshotSyncMessage("2026-09", 3)

	if msg.Period != "2026-09" {
		t.Errorf("NewSnapshotSyncMessage() Period = %v, want %v", msg.Period, "2026-09")
	}
	if msg.Revision != 3 {
		t.Errorf("NewSnapshotSyncMessage() Revision = %v, want %v", msg.Revision, 3)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewSnapshotSyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewSnapshotSyncMessage() Timestamp should be recent")
	}
}

func TestSnapshotSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	msg := &SnapshotSyncMessage{
		Period:    "2026-09",
		Revision:  2,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := SnapshotSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("SnapshotSyncMessageFromJSON() error = %v", err)
	}

	if parsedMsg.Period != msg.Period {
		t.Errorf("Parsed Period = %v, want %v", parsedMsg.Period, msg.Period)
	}
	if parsedMsg.Revision != msg.Revision {
		t.Errorf("Parsed Revision = %v, want %v", parsedMsg.Revision, msg.Revision)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestSnapshotSyncMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"period": 12, "revision": "not_a_number"}`)

	_, err := SnapshotSyncMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("SnapshotSyncMessageFromJSON() should fail with invalid JSON")
	}
}
