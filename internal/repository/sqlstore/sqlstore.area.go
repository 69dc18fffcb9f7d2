package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
)

const areaColumns = `id, name, area_type, description, image_path, inside_of, created_at, updated_at`

type AreaRepo struct {
	BaseRepo
}

func NewAreaRepository(db database.DB) *AreaRepo {
	return &AreaRepo{BaseRepo: BaseRepo{db: db}}
}

func (r *AreaRepo) Create(ctx context.Context, area *models.Area) error {
	query := `
		INSERT INTO areas (
			id, name, area_type, description, image_path, inside_of, created_at, updated_at
		) VALUES (
			:id, :name, :area_type, :description, :image_path, :inside_of, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, area)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("area with this id already exists", err)
		}
		return errors.NewDatabaseError("failed to create area", err)
	}
	return nil
}

func (r *AreaRepo) Get(ctx context.Context, id string) (*models.Area, error) {
	area := &models.Area{}
	query := r.rebind(`SELECT ` + areaColumns + ` FROM areas WHERE id = ?`)

	err := r.db.GetDB().GetContext(ctx, area, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("area not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get area", err)
	}
	return area, nil
}

func (r *AreaRepo) Update(ctx context.Context, area *models.Area) error {
	query := `
		UPDATE areas SET
			name = :name,
			area_type = :area_type,
			description = :description,
			image_path = :image_path,
			inside_of = :inside_of,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, area)
	if err != nil {
		return errors.NewDatabaseError("failed to update area", err)
	}
	return checkAffected(result, "area")
}

func (r *AreaRepo) List(ctx context.Context, filters models.AreaFilters) ([]*models.Area, error) {
	var (
		where []string
		args  []interface{}
	)
	if filters.InsideOf != "" {
		where = append(where, "inside_of = ?")
		args = append(args, filters.InsideOf)
	}
	if filters.AreaType != "" {
		where = append(where, "area_type = ?")
		args = append(args, filters.AreaType)
	}

	query := `SELECT ` + areaColumns + ` FROM areas`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	areas := []*models.Area{}
	if err := r.db.GetDB().SelectContext(ctx, &areas, r.rebind(query), args...); err != nil {
		return nil, errors.NewDatabaseError("failed to list areas", err)
	}
	return areas, nil
}

func (r *AreaRepo) ListByParent(ctx context.Context, parentID string) ([]*models.Area, error) {
	areas := []*models.Area{}
	query := r.rebind(`SELECT ` + areaColumns + ` FROM areas WHERE inside_of = ? ORDER BY created_at, id`)

	if err := r.db.GetDB().SelectContext(ctx, &areas, query, parentID); err != nil {
		return nil, errors.NewDatabaseError("failed to list child areas", err)
	}
	return areas, nil
}

// DeleteByIDs removes the given areas inside tx. Callers must delete children
// before their parents.
func (r *AreaRepo) DeleteByIDs(ctx context.Context, ids []string, tx database.Transaction) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := r.in(`DELETE FROM areas WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to delete areas", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return n, nil
}
