package dto

import (
	"encoding/json"
	"time"

	"stockroom/internal/domain/audit"
)

// AuditEntryResponse is a journal entry with its decoded field diff.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	Action    audit.Action    `json:"action"`
	RequestID string          `json:"requestId,omitempty"`
	Changes   json.RawMessage `json:"changes"`
	Diff      map[string]any  `json:"diff"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FromAuditEntry converts a decompressed journal entry.
func FromAuditEntry(e audit.Entry) (AuditEntryResponse, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return AuditEntryResponse{}, err
	}
	return AuditEntryResponse{
		ID:        e.ID,
		ItemID:    e.ItemID,
		Action:    e.Action,
		RequestID: e.RequestID,
		Changes:   e.Changes,
		Diff:      audit.Diff(snap.Before, snap.After),
		CreatedAt: e.CreatedAt,
	}, nil
}

// FromAuditEntries converts entries in order.
func FromAuditEntries(entries []audit.Entry) ([]AuditEntryResponse, error) {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		r, err := FromAuditEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
