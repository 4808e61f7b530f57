package store

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildUpdateClause(t *testing.T) {
	clause := buildUpdateClause(map[string]any{
		"id":         "x",
		"name":       "Casque F1",
		"created_at": time.Now(),
		"grade":      "Sapeur",
	}, "id", "created_at")

	assert.Equal(t, "grade = EXCLUDED.grade, name = EXCLUDED.name", clause)
}

func TestContainsFoldEscapesWildcards(t *testing.T) {
	sql, args, err := containsFold("50%_a", "t.name", "i.serial_number").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(t.name ILIKE ? OR i.serial_number ILIKE ?)", sql)
	assert.Equal(t, []any{`%50\%\_a%`, `%50\%\_a%`}, args)
}

func TestEquipmentSearchQuery(t *testing.T) {
	t.Run("empty term lists everything", func(t *testing.T) {
		sql, args, err := equipmentSearchQuery("  ").ToSql()
		require.NoError(t, err)

		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, args)
		assert.Contains(t, sql, "LEFT JOIN equipment_types t ON t.id = i.type_id")
		assert.Contains(t, sql, "LEFT JOIN firefighters f ON f.id = i.assigned_to")
		assert.True(t, strings.HasSuffix(sql, "ORDER BY t.name ASC, i.serial_number ASC"))
	})

	t.Run("term matches type serial and assignee", func(t *testing.T) {
		sql, args, err := equipmentSearchQuery("dubois").ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "t.name ILIKE $1")
		assert.Contains(t, sql, "i.serial_number ILIKE $2")
		assert.Contains(t, sql, "f.first_name || ' ' || f.last_name ILIKE $3")
		assert.Len(t, args, 3)
	})
}

func TestPersonnelQueryCountsEquipment(t *testing.T) {
	sql, _, err := personnelQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(i.id) AS epi_count")
	assert.Contains(t, sql, "LEFT JOIN equipment_items i ON i.assigned_to = f.id")
	assert.Contains(t, sql, "GROUP BY f.id")
}

func TestFirefighterByNameQuery(t *testing.T) {
	sql, args, err := firefighterByNameQuery(" Martin ", "Dubois").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "lower(first_name) = lower($1)")
	assert.Contains(t, sql, "lower(last_name) = lower($2)")
	assert.Contains(t, sql, "LIMIT 2")
	assert.Equal(t, []any{"Martin", "Dubois"}, args)
}

func TestTypeByNameQuery(t *testing.T) {
	sql, args, err := typeByNameQuery(" casque f1 ").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "lower(name) = lower($1)")
	assert.Equal(t, []any{"casque f1"}, args)
}

func TestInsertTypeIfMissingQuery(t *testing.T) {
	sql, args, err := insertTypeIfMissingQuery(&types.EquipmentType{ID: "type-1", Name: "Casque F1"}).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO equipment_types"))
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT ((lower(name))) DO NOTHING"))
	assert.Contains(t, args, "Casque F1")
}

func TestAdvanceNextCheckQuery(t *testing.T) {
	day := types.MustParseDate("2026-10-20")
	sql, args, err := advanceNextCheckQuery("item-1", day, time.Now()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE equipment_items SET next_check_date = $1")
	assert.Contains(t, sql, "WHERE id = $3 AND (next_check_date IS NULL OR next_check_date > $4)")
	require.Len(t, args, 4)
	assert.Equal(t, day.Ptr(), args[0])
	assert.Equal(t, "item-1", args[2])
	assert.Equal(t, day.Ptr(), args[3])
}

func TestCompleteCheckQueries(t *testing.T) {
	sql, args, err := checkResultQuery("chk-1", types.CheckResultDone, time.Now()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "UPDATE equipment_checks SET result = $1")
	assert.Contains(t, sql, "WHERE id = $3")
	assert.Equal(t, types.CheckResultDone, args[0])

	day := types.MustParseDate("2026-10-15")
	sql, args, err = lastCheckQuery("item-1", day, time.Now()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "UPDATE equipment_items SET last_check_date = $1")
	assert.Contains(t, sql, "WHERE id = $3")
	assert.Equal(t, day.Ptr(), args[0])
	assert.Equal(t, "item-1", args[2])
}

func TestVerificationQueryOrdersByDate(t *testing.T) {
	sql, _, err := verificationQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "c.check_date")
	assert.Contains(t, sql, "i.serial_number AS equipment_serial_number")
	assert.Contains(t, sql, "LEFT JOIN firefighters f ON f.id = c.checked_by")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY c.check_date ASC NULLS LAST, c.created_at ASC"))
}

func TestToEquipment(t *testing.T) {
	t.Run("joined row", func(t *testing.T) {
		row := &equipmentRow{
			EquipmentItem: types.EquipmentItem{
				ID:            "item-1",
				SerialNumber:  "CF1-001",
				AssignedTo:    utils.StringPtr("ff-1"),
				Status:        utils.StringPtr("Bon état"),
				PurchaseDate:  date(2024, time.March, 1),
				NextCheckDate: date(2026, time.October, 20),
			},
			TypeName:          utils.StringPtr("Casque F1"),
			AssigneeFirstName: utils.StringPtr("Martin"),
			AssigneeLastName:  utils.StringPtr("Dubois"),
		}

		e := toEquipment(row)
		assert.Equal(t, "Casque F1", e.Type)
		assert.Equal(t, "Martin Dubois", e.AssignedTo)
		assert.Equal(t, "ff-1", e.AssigneeID)
		assert.Equal(t, "Bon état", e.Status)
		assert.Equal(t, "2026-10-20", e.NextVerification.String())
		assert.True(t, e.LastVerification.IsZero())
	})

	t.Run("missing joins use fallbacks", func(t *testing.T) {
		e := toEquipment(&equipmentRow{EquipmentItem: types.EquipmentItem{ID: "item-2"}})
		assert.Equal(t, types.UnknownEquipmentType, e.Type)
		assert.Equal(t, types.Unassigned, e.AssignedTo)
		assert.Equal(t, types.DefaultEquipmentStatus, e.Status)
	})
}

func TestToVerification(t *testing.T) {
	t.Run("joined row", func(t *testing.T) {
		row := &checkRow{
			EquipmentCheck: types.EquipmentCheck{
				ID:               "chk-1",
				EquipmentItemID:  "item-1",
				CheckDate:        date(2026, time.October, 15),
				Result:           utils.StringPtr("Planifié"),
				Priority:         utils.StringPtr("high"),
				VerificationType: utils.StringPtr("Test de fonctionnement"),
			},
			EquipmentTypeName:     utils.StringPtr("ARI (Appareil Respiratoire)"),
			EquipmentSerialNumber: utils.StringPtr("ARI-004"),
			AssigneeFirstName:     utils.StringPtr("Sophie"),
			AssigneeLastName:      utils.StringPtr("Laurent"),
		}

		v := toVerification(row)
		assert.Equal(t, "ARI (Appareil Respiratoire)", v.EquipmentName)
		assert.Equal(t, "ARI-004", v.SerialNumber)
		assert.Equal(t, "Sophie Laurent", v.AssignedTo)
		assert.Equal(t, "2026-10-15", v.ScheduledDate.String())
		assert.Equal(t, "high", v.Priority)
		assert.Equal(t, "Test de fonctionnement", v.VerificationType)
	})

	t.Run("missing values", func(t *testing.T) {
		v := toVerification(&checkRow{EquipmentCheck: types.EquipmentCheck{ID: "chk-2"}})
		assert.Equal(t, types.UnknownEquipmentName, v.EquipmentName)
		assert.Equal(t, types.Unassigned, v.AssignedTo)
		assert.Equal(t, types.CheckResultPending, v.Status)
		assert.Equal(t, string(types.PriorityNormal), v.Priority)
		assert.Equal(t, types.DefaultVerificationType, v.VerificationType)
		assert.True(t, v.ScheduledDate.IsZero())
	})
}

func TestToPersonnel(t *testing.T) {
	p := toPersonnel(&personnelRow{
		Firefighter: types.Firefighter{ID: "ff-1", FirstName: "Marie", LastName: "Durand"},
		EpiCount:    3,
	})

	assert.Equal(t, "Marie Durand", p.FullName())
	assert.Equal(t, types.DefaultGrade, p.Grade)
	assert.Equal(t, types.DefaultStation, p.Station)
	assert.Equal(t, 3, p.EpiCount)
}

func TestAssigneeName(t *testing.T) {
	assert.Equal(t, types.Unassigned, assigneeName(nil, nil))
	assert.Equal(t, types.Unassigned, assigneeName(utils.StringPtr(" "), utils.StringPtr("")))
	assert.Equal(t, "Jean", assigneeName(utils.StringPtr("Jean"), nil))
}

func TestSchemaCoversColumns(t *testing.T) {
	for _, columns := range [][]string{equipmentTypeColumns, equipmentItemColumns, firefighterColumns, equipmentCheckColumns} {
		for _, c := range columns {
			assert.Contains(t, schema, c+" ", "column %s missing from schema", c)
		}
	}
}
