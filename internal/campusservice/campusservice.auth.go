package campusservice

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/itsatony/smartrooms/internal/auth"
	"github.com/itsatony/smartrooms/internal/errors"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"
)

// publicRoles is the access list used when projecting users for API responses
var publicRoles = []string{"user"}

// AuthService checks credentials against the users table
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User, password string) error
}

// Login returns the user for a valid username/password pair. Unknown users
// and wrong passwords produce the same error.
func (s *CampusService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.NewValidationError("Username and password are required", nil)
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			auth.DummyCheck(password, s.BcryptCost)
			nuts.L.Infof("[AuthService] Login failed for unknown user")
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		if !stderrors.Is(err, auth.ErrPasswordMismatch) {
			nuts.L.Errorf("[AuthService] Stored credential for %s is unusable: %v", user.ID, err)
		}
		nuts.L.Infof("[AuthService] Login failed for %s", user.ID)
		return nil, errors.NewInvalidCredentialsError()
	}

	nuts.L.Infof("[AuthService] %s logged in as %s", user.ID, user.UserType)
	return publicUser(user)
}

func (s *CampusService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return publicUser(user)
}

// CreateUser hashes password and stores user. Used by seeding and provisioning.
func (s *CampusService) CreateUser(ctx context.Context, user *models.User, password string) error {
	if strings.TrimSpace(user.Username) == "" {
		return errors.NewValidationError("username is required", nil)
	}
	if !user.UserType.Valid() {
		return errors.NewValidationError("user_type must be admin, maintainer or user", nil)
	}
	hash, err := auth.HashPassword(password, s.BcryptCost)
	if err != nil {
		return errors.NewValidationError(err.Error(), err)
	}
	if user.ID == "" {
		user.ID = nuts.NID("usr", 12)
	}
	user.PasswordHash = hash
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return s.Users.Create(ctx, user)
}

// publicUser copies only the fields readable by regular roles, dropping the credential
func publicUser(user *models.User) (*models.User, error) {
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user, publicRoles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	filtered := &models.User{}
	if _, err := struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, publicRoles); err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to user struct", err)
	}
	return filtered, nil
}
