package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/insyd-labs/notification-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewPostgresUserRepository creates a new PostgresUserRepository. All
// operations run under the given timeout; expiry surfaces as
// models.ErrStoreUnavailable.
func NewPostgresUserRepository(db *gorm.DB, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, timeout: timeout}
}

// CreateUser registers a new user. Username and email uniqueness is
// enforced by the store.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateUser
		}
		return storeError(err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnknownUser
		}
		return nil, storeError(err)
	}
	return &user, nil
}

// GetUsers retrieves all users
func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, storeError(err)
	}
	return users, nil
}
