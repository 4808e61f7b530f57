package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epitrack/internal/schedule"
	"epitrack/internal/utils"
	"epitrack/pkg/types"
)

type memoryStore struct {
	types       map[string]*types.EquipmentType
	personnel   map[string]*types.Firefighter
	items       map[string]*types.EquipmentItem
	checks      map[string]*types.EquipmentCheck
	upsertCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		types:     map[string]*types.EquipmentType{},
		personnel: map[string]*types.Firefighter{},
		items:     map[string]*types.EquipmentItem{},
		checks:    map[string]*types.EquipmentCheck{},
	}
}

func (m *memoryStore) UpsertType(_ context.Context, t *types.EquipmentType) error {
	m.upsertCalls++
	m.types[t.ID] = t
	return nil
}

func (m *memoryStore) UpsertFirefighter(_ context.Context, f *types.Firefighter) error {
	m.upsertCalls++
	m.personnel[f.ID] = f
	return nil
}

func (m *memoryStore) UpsertEquipmentItem(_ context.Context, i *types.EquipmentItem) error {
	m.upsertCalls++
	m.items[i.ID] = i
	return nil
}

func (m *memoryStore) UpsertCheck(_ context.Context, c *types.EquipmentCheck) error {
	m.upsertCalls++
	m.checks[c.ID] = c
	return nil
}

func TestSeedIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	add := func(id string) {
		assert.Len(t, id, utils.NanoidSize, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	for _, v := range equipmentTypes {
		add(v.ID)
	}
	for _, v := range roster {
		add(v.ID)
	}
	for _, v := range demoItems {
		add(v.ID)
	}
	for _, v := range demoChecks {
		add(v.ID)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	today := types.MustParseDate("2026-10-15")

	for range 2 {
		require.NoError(t, SeedEquipmentTypes(ctx, store))
		require.NoError(t, SeedPersonnel(ctx, store))
		require.NoError(t, SeedDemo(ctx, store, store, today))
	}

	assert.Len(t, store.types, len(equipmentTypes))
	assert.Len(t, store.personnel, len(roster))
	assert.Len(t, store.items, len(demoItems))
	assert.Len(t, store.checks, len(demoChecks))
}

func TestSeedDemoReferencesSeededRows(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	today := types.MustParseDate("2026-10-15")

	require.NoError(t, SeedEquipmentTypes(ctx, store))
	require.NoError(t, SeedPersonnel(ctx, store))
	require.NoError(t, SeedDemo(ctx, store, store, today))

	for _, item := range store.items {
		assert.Contains(t, store.types, utils.PtrString(item.TypeID))
		assert.Contains(t, store.personnel, utils.PtrString(item.AssignedTo))
	}

	for _, check := range store.checks {
		assert.Contains(t, store.items, check.EquipmentItemID)
		assert.Contains(t, store.personnel, utils.PtrString(check.CheckedBy))
	}

	helmet := store.items["BpcwEDTVsUzUeBYYI54dGiANXICbt2fI"]
	assert.Equal(t, today.AddDays(3), types.DateFromPtr(helmet.NextCheckDate))
	assert.Equal(t, today.AddDays(-12), types.DateFromPtr(helmet.LastCheckDate))
}

func TestSeedDemoCoversEveryState(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	today := types.MustParseDate("2026-10-15")

	require.NoError(t, SeedDemo(ctx, store, store, today))

	states := map[schedule.State]int{}
	for _, c := range store.checks {
		states[schedule.Classify(utils.PtrString(c.Result), types.DateFromPtr(c.CheckDate), today.In(time.UTC).Add(10*time.Hour))]++
	}

	assert.Equal(t, 1, states[schedule.StateOverdue])
	assert.Equal(t, 1, states[schedule.StateDueToday])
	assert.Equal(t, 1, states[schedule.StateDone])
	assert.Equal(t, 3, states[schedule.StateScheduled])
}
