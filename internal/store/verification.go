package store

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var equipmentCheckColumns = utils.StructTagValues(types.EquipmentCheck{})

type VerificationRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationRepository(pool *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{pool: pool}
}

// verificationQuery joins every check with its item, the item's type and the
// assigned firefighter. Checks without a date sort last.
func verificationQuery() sq.SelectBuilder {
	return psql().
		Select(utils.PrefixSliceOfStrings("c", equipmentCheckColumns)...).
		Columns(
			"t.name AS equipment_type_name",
			"i.serial_number AS equipment_serial_number",
			"f.first_name AS assignee_first_name",
			"f.last_name AS assignee_last_name",
		).
		From(equipmentCheckTableName + " c").
		LeftJoin(equipmentItemTableName + " i ON i.id = c.equipment_item_id").
		LeftJoin(equipmentTypeTableName + " t ON t.id = i.type_id").
		LeftJoin(firefighterTableName + " f ON f.id = c.checked_by").
		OrderBy("c.check_date ASC NULLS LAST", "c.created_at ASC")
}

func (r *VerificationRepository) selectVerifications(ctx context.Context, q sq.SelectBuilder) ([]*types.Verification, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verifications query: %w", err)
	}

	var rows []*checkRow
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch verifications: %w", err)
	}

	return mapRows(rows, toVerification), nil
}

func (r *VerificationRepository) Verifications(ctx context.Context) ([]*types.Verification, error) {
	return r.selectVerifications(ctx, verificationQuery())
}

func (r *VerificationRepository) VerificationsByEquipment(ctx context.Context, equipmentID string) ([]*types.Verification, error) {
	return r.selectVerifications(ctx, verificationQuery().Where(sq.Eq{"c.equipment_item_id": equipmentID}))
}

func (r *VerificationRepository) VerificationsByAssignee(ctx context.Context, firefighterID string) ([]*types.Verification, error) {
	return r.selectVerifications(ctx, verificationQuery().Where(sq.Eq{"c.checked_by": firefighterID}))
}

func (r *VerificationRepository) Check(ctx context.Context, id string) (*types.EquipmentCheck, error) {
	query, args, err := psql().
		Select(equipmentCheckColumns...).
		From(equipmentCheckTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate check query: %w", err)
	}

	var check types.EquipmentCheck
	err = pgxscan.Get(ctx, r.pool, &check, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to fetch check %s: %w", id, err)
	}

	return &check, nil
}

// ScheduleCheck inserts check and, in the same transaction, moves the
// equipment's next check date to the check date when it is unset or later.
func (r *VerificationRepository) ScheduleCheck(ctx context.Context, check *types.EquipmentCheck) error {
	now := time.Now()
	check.ID = utils.NanoID()
	check.CreatedAt = now
	check.UpdatedAt = now

	insertQuery, insertArgs, err := psql().
		Insert(equipmentCheckTableName).
		SetMap(utils.StructToMap(check)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert check query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("failed to create check: %w", err)
	}

	if day := types.DateFromPtr(check.CheckDate); day.Valid() {
		query, args, err := advanceNextCheckQuery(check.EquipmentItemID, day, now).ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate next check date query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update next check date of equipment %s: %w", check.EquipmentItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CompleteCheck marks the check done and stamps day as its equipment's last
// check date. Both writes commit together or not at all.
func (r *VerificationRepository) CompleteCheck(ctx context.Context, id, itemID string, day types.Date) error {
	now := time.Now()

	resultQuery, resultArgs, err := checkResultQuery(id, types.CheckResultDone, now).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update check query: %w", err)
	}

	stampQuery, stampArgs, err := lastCheckQuery(itemID, day, now).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate last check date query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, resultQuery, resultArgs...)
	if err != nil {
		return fmt.Errorf("failed to update check %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrVerificationNotFound
	}

	tag, err = tx.Exec(ctx, stampQuery, stampArgs...)
	if err != nil {
		return fmt.Errorf("failed to update last check date of equipment %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrEquipmentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func checkResultQuery(id, result string, now time.Time) sq.UpdateBuilder {
	return psql().
		Update(equipmentCheckTableName).
		Set("result", result).
		Set("updated_at", now).
		Where(sq.Eq{"id": id})
}

// advanceNextCheckQuery only ever moves next_check_date earlier.
func advanceNextCheckQuery(itemID string, day types.Date, now time.Time) sq.UpdateBuilder {
	return psql().
		Update(equipmentItemTableName).
		Set("next_check_date", day.Ptr()).
		Set("updated_at", now).
		Where(sq.Eq{"id": itemID}).
		Where(sq.Or{
			sq.Eq{"next_check_date": nil},
			sq.Gt{"next_check_date": day.Ptr()},
		})
}

func lastCheckQuery(itemID string, day types.Date, now time.Time) sq.UpdateBuilder {
	return psql().
		Update(equipmentItemTableName).
		Set("last_check_date", day.Ptr()).
		Set("updated_at", now).
		Where(sq.Eq{"id": itemID})
}

func (r *VerificationRepository) UpsertCheck(ctx context.Context, check *types.EquipmentCheck) error {
	now := time.Now()
	if check.CreatedAt.IsZero() {
		check.CreatedAt = now
	}
	check.UpdatedAt = now

	checkMap := utils.StructToMap(check)

	query, args, err := psql().
		Insert(equipmentCheckTableName).
		SetMap(checkMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(checkMap, "id", "created_at")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert check query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert check")
}
