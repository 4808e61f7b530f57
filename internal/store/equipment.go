package store

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var equipmentItemColumns = utils.StructTagValues(types.EquipmentItem{})

type EquipmentRepository struct {
	pool *pgxpool.Pool
}

func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

// equipmentQuery joins items with their type and assignee.
func equipmentQuery() sq.SelectBuilder {
	return psql().
		Select(utils.PrefixSliceOfStrings("i", equipmentItemColumns)...).
		Columns(
			"t.name AS type_name",
			"f.first_name AS assignee_first_name",
			"f.last_name AS assignee_last_name",
		).
		From(equipmentItemTableName + " i").
		LeftJoin(equipmentTypeTableName + " t ON t.id = i.type_id").
		LeftJoin(firefighterTableName + " f ON f.id = i.assigned_to")
}

// equipmentSearchQuery matches term against type, serial number and assignee
// name. An empty term matches everything.
func equipmentSearchQuery(term string) sq.SelectBuilder {
	q := equipmentQuery().OrderBy("t.name ASC", "i.serial_number ASC")
	if strings.TrimSpace(term) == "" {
		return q
	}

	return q.Where(containsFold(term,
		"t.name",
		"i.serial_number",
		"f.first_name || ' ' || f.last_name",
	))
}

func (r *EquipmentRepository) Equipment(ctx context.Context) ([]*types.Equipment, error) {
	return r.SearchEquipment(ctx, "")
}

func (r *EquipmentRepository) SearchEquipment(ctx context.Context, term string) ([]*types.Equipment, error) {
	query, args, err := equipmentSearchQuery(term).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment query: %w", err)
	}

	var rows []*equipmentRow
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	return mapRows(rows, toEquipment), nil
}

func (r *EquipmentRepository) EquipmentByID(ctx context.Context, id string) (*types.Equipment, error) {
	query, args, err := equipmentQuery().
		Where(sq.Eq{"i.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment query: %w", err)
	}

	var row equipmentRow
	err = pgxscan.Get(ctx, r.pool, &row, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch equipment %s: %w", id, err)
	}

	return toEquipment(&row), nil
}

func (r *EquipmentRepository) EquipmentByAssignee(ctx context.Context, firefighterID string) ([]*types.Equipment, error) {
	query, args, err := equipmentQuery().
		Where(sq.Eq{"i.assigned_to": firefighterID}).
		OrderBy("t.name ASC", "i.serial_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment query: %w", err)
	}

	var rows []*equipmentRow
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment for %s: %w", firefighterID, err)
	}

	return mapRows(rows, toEquipment), nil
}

func (r *EquipmentRepository) CountEquipment(ctx context.Context) (int, error) {
	query, args, err := psql().Select("COUNT(*)").From(equipmentItemTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count query: %w", err)
	}

	var count int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, utils.ErrorWrapOrNil(err, "failed to count equipment")
}

func (r *EquipmentRepository) itemWhere(ctx context.Context, where sq.Eq) (*types.EquipmentItem, error) {
	query, args, err := psql().
		Select(equipmentItemColumns...).
		From(equipmentItemTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment item query: %w", err)
	}

	var item types.EquipmentItem
	err = pgxscan.Get(ctx, r.pool, &item, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch equipment item: %w", err)
	}

	return &item, nil
}

func (r *EquipmentRepository) EquipmentItem(ctx context.Context, id string) (*types.EquipmentItem, error) {
	return r.itemWhere(ctx, sq.Eq{"id": id})
}

func (r *EquipmentRepository) EquipmentItemBySerial(ctx context.Context, serial string) (*types.EquipmentItem, error) {
	return r.itemWhere(ctx, sq.Eq{"serial_number": strings.TrimSpace(serial)})
}

func (r *EquipmentRepository) CreateEquipmentItem(ctx context.Context, item *types.EquipmentItem) error {
	now := time.Now()
	item.ID = utils.NanoID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.Status == nil {
		item.Status = utils.StringPtr(types.DefaultEquipmentStatus)
	}

	query, args, err := psql().
		Insert(equipmentItemTableName).
		SetMap(utils.StructToMap(item)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert equipment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create equipment item")
}

func (r *EquipmentRepository) UpsertEquipmentItem(ctx context.Context, item *types.EquipmentItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	itemMap := utils.StructToMap(item)

	query, args, err := psql().
		Insert(equipmentItemTableName).
		SetMap(itemMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(itemMap, "id", "created_at")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert equipment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert equipment item")
}
