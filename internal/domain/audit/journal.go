// Package audit keeps an in-memory journal of inventory mutations.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	appctx "stockroom/internal/core/context"
)

// DefaultCompressThreshold is the payload size above which entries are stored compressed.
const DefaultCompressThreshold = 10 * 1024

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Entry represents a single journal entry.
type Entry struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"itemId"`
	Action            Action          `json:"action"`
	RequestID         string          `json:"requestId,omitempty"`
	Changes           json.RawMessage `json:"changes"`
	ChangesCompressed []byte          `json:"-"`
	CompressionAlgo   CompressionAlgo `json:"compressionAlgo"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Snapshot is the recorded before/after state of an item.
type Snapshot struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

// Snapshot decodes the entry's changes. Compressed entries must be
// decompressed first; History and Entries do that.
func (e Entry) Snapshot() (Snapshot, error) {
	var s Snapshot
	if len(e.Changes) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(e.Changes, &s); err != nil {
		return s, fmt.Errorf("decode changes: %w", err)
	}
	return s, nil
}

// Journal stores entries for the lifetime of the process.
// It is safe for concurrent use.
type Journal struct {
	mu                sync.RWMutex
	entries           []Entry
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
	now               func() time.Time
}

// NewJournal creates a journal. A threshold <= 0 selects DefaultCompressThreshold.
func NewJournal(compressThreshold int) (*Journal, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	if compressThreshold <= 0 {
		compressThreshold = DefaultCompressThreshold
	}

	return &Journal{
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: compressThreshold,
		now:               func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close releases the codec resources.
func (j *Journal) Close() error {
	j.decoder.Close()
	return j.encoder.Close()
}

// Record appends an entry holding the before and after states. Either may be nil.
func (j *Journal) Record(ctx context.Context, action Action, itemID string, before, after any) error {
	changes, err := json.Marshal(struct {
		Before any `json:"before"`
		After  any `json:"after"`
	}{before, after})
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}

	entry := Entry{
		ID:              uuid.NewString(),
		ItemID:          itemID,
		Action:          action,
		RequestID:       appctx.GetRequestID(ctx),
		Changes:         changes,
		CompressionAlgo: CompressionNone,
		CreatedAt:       j.now(),
	}

	// Compress large changes
	if len(changes) > j.compressThreshold {
		entry.ChangesCompressed = j.encoder.EncodeAll(changes, nil)
		entry.Changes = nil
		entry.CompressionAlgo = CompressionZstd
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	return nil
}

// History returns up to limit entries for itemID, newest first.
// A limit <= 0 returns every matching entry.
func (j *Journal) History(itemID string, limit int) ([]Entry, error) {
	return j.collect(limit, func(e Entry) bool { return e.ItemID == itemID })
}

// Entries returns up to limit entries across all items, newest first.
func (j *Journal) Entries(limit int) ([]Entry, error) {
	return j.collect(limit, func(Entry) bool { return true })
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

func (j *Journal) collect(limit int, keep func(Entry) bool) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Entry, 0)
	for i := len(j.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		e := j.entries[i]
		if !keep(e) {
			continue
		}

		// Decompress if needed
		if e.CompressionAlgo == CompressionZstd && len(e.ChangesCompressed) > 0 {
			decompressed, err := j.decoder.DecodeAll(e.ChangesCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress changes: %w", err)
			}
			e.Changes = decompressed
			e.ChangesCompressed = nil
		}

		out = append(out, e)
	}
	return out, nil
}

// Diff calculates the difference between old and new states.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	// Removed fields
	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

// equal compares decoded JSON values by their printed form.
func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
