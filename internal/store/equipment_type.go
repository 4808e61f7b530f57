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

var equipmentTypeColumns = utils.StructTagValues(types.EquipmentType{})

type EquipmentTypeRepository struct {
	pool *pgxpool.Pool
}

func NewEquipmentTypeRepository(pool *pgxpool.Pool) *EquipmentTypeRepository {
	return &EquipmentTypeRepository{pool: pool}
}

func (r *EquipmentTypeRepository) AllTypes(ctx context.Context) ([]*types.EquipmentType, error) {
	query, args, err := psql().
		Select(equipmentTypeColumns...).
		From(equipmentTypeTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment types query: %w", err)
	}

	var equipmentTypes []*types.EquipmentType
	err = pgxscan.Select(ctx, r.pool, &equipmentTypes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment types: %w", err)
	}

	return equipmentTypes, nil
}

func (r *EquipmentTypeRepository) TypeByName(ctx context.Context, name string) (*types.EquipmentType, error) {
	query, args, err := typeByNameQuery(name).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment type query: %w", err)
	}

	var equipmentType types.EquipmentType
	err = pgxscan.Get(ctx, r.pool, &equipmentType, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEquipmentTypeNotFound
		}
		return nil, fmt.Errorf("failed to fetch equipment type: %w", err)
	}

	return &equipmentType, nil
}

func typeByNameQuery(name string) sq.SelectBuilder {
	return psql().
		Select(equipmentTypeColumns...).
		From(equipmentTypeTableName).
		Where(sq.Expr("lower(name) = lower(?)", strings.TrimSpace(name))).
		Limit(1)
}

// GetOrCreateType resolves a type by name, case-insensitively, creating it
// when no type matches. Concurrent callers racing on the same name all get
// the row that won the insert.
func (r *EquipmentTypeRepository) GetOrCreateType(ctx context.Context, name string) (*types.EquipmentType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("equipment type name is empty")
	}

	query, args, err := insertTypeIfMissingQuery(&types.EquipmentType{
		ID:        utils.NanoID(),
		Name:      name,
		CreatedAt: time.Now(),
	}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert equipment type: %w", err)
	}

	return r.TypeByName(ctx, name)
}

func insertTypeIfMissingQuery(equipmentType *types.EquipmentType) sq.InsertBuilder {
	return psql().
		Insert(equipmentTypeTableName).
		SetMap(utils.StructToMap(equipmentType)).
		Suffix("ON CONFLICT ((lower(name))) DO NOTHING")
}
