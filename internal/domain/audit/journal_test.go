package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/inventory"
	"stockroom/pkg/logger"
)

func newJournal(t *testing.T, threshold int) *Journal {
	t.Helper()
	j, err := NewJournal(threshold)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_DefaultThreshold(t *testing.T) {
	j := newJournal(t, 0)
	assert.Equal(t, DefaultCompressThreshold, j.compressThreshold)
}

func TestJournal_RecordAndHistory(t *testing.T) {
	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{RequestID: "req-1"})
	j := newJournal(t, 0)

	require.NoError(t, j.Record(ctx, ActionCreate, "1", nil, map[string]any{"name": "Laptop"}))
	require.NoError(t, j.Record(ctx, ActionCreate, "2", nil, map[string]any{"name": "Mouse"}))
	require.NoError(t, j.Record(ctx, ActionUpdate, "1",
		map[string]any{"name": "Laptop"}, map[string]any{"name": "Notebook"}))

	history, err := j.History("1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ActionUpdate, history[0].Action)
	assert.Equal(t, ActionCreate, history[1].Action)
	assert.Equal(t, "req-1", history[0].RequestID)
	assert.Equal(t, CompressionNone, history[0].CompressionAlgo)
	assert.NotEmpty(t, history[0].ID)

	snap, err := history[0].Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Laptop", snap.Before["name"])
	assert.Equal(t, "Notebook", snap.After["name"])

	limited, err := j.History("1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := j.History("404", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_EntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, 0)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, j.Record(ctx, ActionCreate, id, nil, nil))
	}

	entries, err := j.Entries(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ItemID)
	assert.Equal(t, "b", entries[1].ItemID)
	assert.Equal(t, 3, j.Len())
}

func TestJournal_CompressesLargePayloads(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, 64)

	big := map[string]any{"comment": strings.Repeat("x", 500)}
	require.NoError(t, j.Record(ctx, ActionCreate, "1", nil, big))
	require.NoError(t, j.Record(ctx, ActionDelete, "2", map[string]any{"a": 1}, nil))

	j.mu.RLock()
	stored := j.entries[0]
	small := j.entries[1]
	j.mu.RUnlock()

	assert.Equal(t, CompressionZstd, stored.CompressionAlgo)
	assert.Nil(t, stored.Changes)
	assert.NotEmpty(t, stored.ChangesCompressed)
	assert.Equal(t, CompressionNone, small.CompressionAlgo)

	history, err := j.History("1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].ChangesCompressed)

	snap, err := history[0].Snapshot()
	require.NoError(t, err)
	assert.Nil(t, snap.Before)
	assert.Equal(t, big["comment"], snap.After["comment"])
}

func TestDiff(t *testing.T) {
	oldState := map[string]any{"name": "Laptop", "quantity": 5.0, "comment": "old"}
	newState := map[string]any{"name": "Laptop", "quantity": 3.0, "status": "Low Stock"}

	changes := Diff(oldState, newState)

	assert.Equal(t, map[string]any{
		"quantity": map[string]any{"old": 5.0, "new": 3.0},
		"status":   map[string]any{"old": nil, "new": "Low Stock"},
		"comment":  map[string]any{"old": "old", "new": nil},
	}, changes)
	assert.Empty(t, Diff(oldState, oldState))
}

func TestAttach_RecordsServiceMutations(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, 0)
	svc := inventory.NewService(logger.NewNop())
	Attach(svc, j)

	qty, price, popular := 5, types.MustMoney("1000"), true
	draft := inventory.Draft{
		ID:       "1",
		Name:     "Laptop",
		Category: inventory.CategoryElectronics,
		Quantity: &qty,
		Price:    &price,
		Supplier: "SupplierA",
		Status:   inventory.StatusInStock,
		Popular:  &popular,
	}
	require.NoError(t, svc.Add(ctx, draft))

	less := 2
	draft.Quantity = &less
	require.NoError(t, svc.UpdateByName(ctx, "laptop", draft))

	// Rejected mutations are not journaled.
	assert.Error(t, svc.Add(ctx, draft))
	assert.Error(t, svc.DeleteByName(ctx, "laptop", false))

	require.NoError(t, svc.DeleteByName(ctx, "laptop", true))

	history, err := j.History("1", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []Action{ActionDelete, ActionUpdate, ActionCreate},
		[]Action{history[0].Action, history[1].Action, history[2].Action})

	snap, err := history[1].Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"quantity": map[string]any{"old": 5.0, "new": 2.0},
	}, Diff(snap.Before, snap.After))
}
