package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"epitrack/internal/utils"
	"epitrack/pkg/types"
)

type mockTypes struct {
	mock.Mock
}

func (m *mockTypes) GetOrCreateType(ctx context.Context, name string) (*types.EquipmentType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.EquipmentType), args.Error(1)
}

type mockEquipment struct {
	mock.Mock
}

func (m *mockEquipment) CreateEquipmentItem(ctx context.Context, item *types.EquipmentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type mockPersonnel struct {
	mock.Mock
}

func (m *mockPersonnel) FirefighterByName(ctx context.Context, firstName, lastName string) (*types.Firefighter, error) {
	args := m.Called(ctx, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Firefighter), args.Error(1)
}

func (m *mockPersonnel) CreateFirefighter(ctx context.Context, firefighter *types.Firefighter) error {
	args := m.Called(ctx, firefighter)
	return args.Error(0)
}

type fixture struct {
	types     *mockTypes
	equipment *mockEquipment
	personnel *mockPersonnel
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		types:     new(mockTypes),
		equipment: new(mockEquipment),
		personnel: new(mockPersonnel),
	}
	f.service = NewService(f.types, f.equipment, f.personnel, func() types.Date { return testToday })
	return f
}

var testToday = types.MustParseDate("2026-10-15")

func (f *fixture) assertExpectations(t *testing.T) {
	f.types.AssertExpectations(t)
	f.equipment.AssertExpectations(t)
	f.personnel.AssertExpectations(t)
}

func TestConditionOf(t *testing.T) {
	tests := map[string]Condition{
		"Disponible":  ConditionGood,
		"available":   ConditionGood,
		" Bon état ":  ConditionGood,
		"BON":         ConditionGood,
		"Maintenance": ConditionWarning,
		"moyen":       ConditionWarning,
		"À vérifier":  ConditionWarning,
		"retired":     ConditionBad,
		"Mauvais":     ConditionBad,
		"À remplacer": ConditionBad,
		"":            ConditionNeutral,
		"en prêt":     ConditionNeutral,
	}

	for status, want := range tests {
		assert.Equal(t, want, ConditionOf(status), status)
	}
}

func TestAddEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with resolved type and assignee", func(t *testing.T) {
		f := newFixture()
		f.personnel.On("FirefighterByName", ctx, "Martin", "Dubois").
			Return(&types.Firefighter{ID: "ff-1"}, nil)
		f.types.On("GetOrCreateType", ctx, "Gants").
			Return(&types.EquipmentType{ID: "type-1", Name: "Gants"}, nil)
		f.equipment.On("CreateEquipmentItem", ctx, mock.AnythingOfType("*types.EquipmentItem")).Return(nil)

		item, err := f.service.AddEquipment(ctx, &types.AddEquipmentForm{
			Type:         " Gants ",
			SerialNumber: "GT-010",
			AssignedTo:   "Martin Dubois",
			PurchaseDate: "2025-01-15",
			NextCheck:    "2026-11-01",
			Status:       "Bon état",
		})
		require.NoError(t, err)

		assert.Equal(t, "type-1", utils.PtrString(item.TypeID))
		assert.Equal(t, "ff-1", utils.PtrString(item.AssignedTo))
		assert.Equal(t, "GT-010", item.SerialNumber)
		assert.Equal(t, "Bon état", utils.PtrString(item.Status))
		assert.Equal(t, types.MustParseDate("2025-01-15"), types.DateFromPtr(item.PurchaseDate))
		assert.Equal(t, types.MustParseDate("2026-11-01"), types.DateFromPtr(item.NextCheckDate))
		f.assertExpectations(t)
	})

	t.Run("unassigned item skips the personnel lookup", func(t *testing.T) {
		f := newFixture()
		f.types.On("GetOrCreateType", ctx, "Lampe").Return(&types.EquipmentType{ID: "type-2"}, nil)
		f.equipment.On("CreateEquipmentItem", ctx, mock.Anything).Return(nil)

		item, err := f.service.AddEquipment(ctx, &types.AddEquipmentForm{Type: "Lampe", SerialNumber: "LP-001"})
		require.NoError(t, err)

		assert.Nil(t, item.AssignedTo)
		assert.Nil(t, item.Status)
		assert.Equal(t, testToday, types.DateFromPtr(item.PurchaseDate))
		f.assertExpectations(t)
	})

	t.Run("rejects missing fields and bad dates", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.AddEquipment(ctx, &types.AddEquipmentForm{PurchaseDate: "32/13/2025"})

		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("type"))
		assert.True(t, verr.Has("serial_number"))
		assert.True(t, verr.Has("purchase_date"))
		assert.False(t, verr.Has("next_check"))
		f.assertExpectations(t)
	})

	t.Run("unknown assignee is a validation error", func(t *testing.T) {
		f := newFixture()
		f.personnel.On("FirefighterByName", ctx, "Paul", "").Return(nil, types.ErrPersonnelNotFound)

		_, err := f.service.AddEquipment(ctx, &types.AddEquipmentForm{Type: "Hache", SerialNumber: "H-1", AssignedTo: "Paul"})

		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Personnel non trouvé", verr.Fields["assigned_to"])
		f.equipment.AssertNotCalled(t, "CreateEquipmentItem", mock.Anything, mock.Anything)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("boom")
		f.types.On("GetOrCreateType", ctx, "Corde").Return(nil, boom)

		_, err := f.service.AddEquipment(ctx, &types.AddEquipmentForm{Type: "Corde", SerialNumber: "C-1"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestAddPersonnel(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		f := newFixture()
		f.personnel.On("CreateFirefighter", ctx, mock.AnythingOfType("*types.Firefighter")).Return(nil)

		ff, err := f.service.AddPersonnel(ctx, &types.AddPersonnelForm{FirstName: "Jean", LastName: " Le Gall "})
		require.NoError(t, err)

		assert.Equal(t, "Le Gall", ff.LastName)
		assert.Equal(t, types.DefaultStation, utils.PtrString(ff.Station))
		assert.Equal(t, types.DefaultGrade, utils.PtrString(ff.Grade))
		assert.Nil(t, ff.Email)
		f.assertExpectations(t)
	})

	t.Run("validates", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.AddPersonnel(ctx, &types.AddPersonnelForm{FirstName: "Jean Paul", Email: "nope"})

		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("first_name"))
		assert.True(t, verr.Has("last_name"))
		assert.True(t, verr.Has("email"))
		f.personnel.AssertNotCalled(t, "CreateFirefighter", mock.Anything, mock.Anything)
	})

	t.Run("first name rejects any whitespace", func(t *testing.T) {
		for _, first := range []string{"Jean\u00a0Paul", "Jean\nPaul", "Jean\u2003Paul"} {
			f := newFixture()

			_, err := f.service.AddPersonnel(ctx, &types.AddPersonnelForm{FirstName: first, LastName: "Martin"})

			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr, "%q", first)
			assert.True(t, verr.Has("first_name"), "%q", first)
			f.personnel.AssertNotCalled(t, "CreateFirefighter", mock.Anything, mock.Anything)
		}
	})

	t.Run("collapses whitespace inside the last name", func(t *testing.T) {
		f := newFixture()
		f.personnel.On("CreateFirefighter", ctx, mock.AnythingOfType("*types.Firefighter")).Return(nil)

		ff, err := f.service.AddPersonnel(ctx, &types.AddPersonnelForm{FirstName: "Jean", LastName: "Le \t Gall\u00a0"})
		require.NoError(t, err)

		assert.Equal(t, "Le Gall", ff.LastName)
		first, last := types.SplitFullName(ff.FirstName + " " + ff.LastName)
		assert.Equal(t, "Jean", first)
		assert.Equal(t, "Le Gall", last)
	})
}
