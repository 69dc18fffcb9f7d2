package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
)

const userColumns = `id, username, password_hash, user_type, email, phone, created_at`

type UserRepo struct {
	BaseRepo
}

func NewUserRepository(db database.DB) *UserRepo {
	return &UserRepo{BaseRepo: BaseRepo{db: db}}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, user_type, email, phone, created_at
		) VALUES (
			:id, :username, :password_hash, :user_type, :email, :phone, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("user already exists", err)
		}
		return errors.NewDatabaseError("failed to create user", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	query := r.rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)

	err := r.db.GetDB().GetContext(ctx, user, query, value)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}
