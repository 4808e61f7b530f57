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

var firefighterColumns = utils.StructTagValues(types.Firefighter{})

type PersonnelRepository struct {
	pool *pgxpool.Pool
}

func NewPersonnelRepository(pool *pgxpool.Pool) *PersonnelRepository {
	return &PersonnelRepository{pool: pool}
}

// personnelQuery counts the items assigned to each firefighter.
func personnelQuery() sq.SelectBuilder {
	columns := utils.PrefixSliceOfStrings("f", firefighterColumns)

	return psql().
		Select(columns...).
		Column("COUNT(i.id) AS epi_count").
		From(firefighterTableName + " f").
		LeftJoin(equipmentItemTableName + " i ON i.assigned_to = f.id").
		GroupBy(columns...)
}

func personnelSearchQuery(term string) sq.SelectBuilder {
	q := personnelQuery().OrderBy("f.last_name ASC", "f.first_name ASC")
	if strings.TrimSpace(term) == "" {
		return q
	}

	return q.Where(containsFold(term,
		"f.first_name || ' ' || f.last_name",
		"f.grade",
		"f.station",
	))
}

func (r *PersonnelRepository) Personnel(ctx context.Context) ([]*types.Personnel, error) {
	return r.SearchPersonnel(ctx, "")
}

func (r *PersonnelRepository) SearchPersonnel(ctx context.Context, term string) ([]*types.Personnel, error) {
	query, args, err := personnelSearchQuery(term).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate personnel query: %w", err)
	}

	var rows []*personnelRow
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}

	return mapRows(rows, toPersonnel), nil
}

func (r *PersonnelRepository) PersonnelByID(ctx context.Context, id string) (*types.Personnel, error) {
	query, args, err := personnelQuery().
		Where(sq.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate personnel query: %w", err)
	}

	var row personnelRow
	err = pgxscan.Get(ctx, r.pool, &row, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrPersonnelNotFound
		}
		return nil, fmt.Errorf("failed to fetch personnel %s: %w", id, err)
	}

	return toPersonnel(&row), nil
}

// firefighterByNameQuery fetches at most two matches, enough to tell a unique
// name from an ambiguous one.
func firefighterByNameQuery(firstName, lastName string) sq.SelectBuilder {
	return psql().
		Select(firefighterColumns...).
		From(firefighterTableName).
		Where(sq.Expr("lower(first_name) = lower(?)", strings.TrimSpace(firstName))).
		Where(sq.Expr("lower(last_name) = lower(?)", strings.TrimSpace(lastName))).
		OrderBy("created_at ASC").
		Limit(2)
}

func (r *PersonnelRepository) FirefighterByName(ctx context.Context, firstName, lastName string) (*types.Firefighter, error) {
	query, args, err := firefighterByNameQuery(firstName, lastName).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate firefighter query: %w", err)
	}

	var matches []*types.Firefighter
	err = pgxscan.Select(ctx, r.pool, &matches, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch firefighter: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, types.ErrPersonnelNotFound
	case 1:
		return matches[0], nil
	}
	return nil, types.ErrPersonnelAmbiguous
}

func (r *PersonnelRepository) CreateFirefighter(ctx context.Context, firefighter *types.Firefighter) error {
	firefighter.ID = utils.NanoID()
	firefighter.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(firefighterTableName).
		SetMap(utils.StructToMap(firefighter)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert firefighter query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create firefighter")
}

func (r *PersonnelRepository) UpsertFirefighter(ctx context.Context, firefighter *types.Firefighter) error {
	if firefighter.CreatedAt.IsZero() {
		firefighter.CreatedAt = time.Now()
	}

	firefighterMap := utils.StructToMap(firefighter)

	query, args, err := psql().
		Insert(firefighterTableName).
		SetMap(firefighterMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(firefighterMap, "id", "created_at")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert firefighter query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert firefighter")
}
