package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/insyd-labs/notification-service/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint) (bool, error)
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}

type postgresNotificationRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewPostgresNotificationRepository creates a NotificationRepository
// backed by PostgreSQL.
func NewPostgresNotificationRepository(db *gorm.DB, timeout time.Duration) NotificationRepository {
	return &postgresNotificationRepository{db: db, timeout: timeout}
}

// CreateNotification inserts one notification row. The recipient must
// exist; a missing recipient fails with models.ErrUnknownUser and the
// row ID and creation time are assigned by the store.
func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", notification.UserID).Count(&count).Error; err != nil {
		return storeError(err)
	}
	if count == 0 {
		return models.ErrUnknownUser
	}

	if notification.Status == "" {
		notification.Status = models.StatusUnread
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// GetByRecipientID returns the recipient's notifications, most recent
// first. A non-positive limit returns everything.
func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := r.db.WithContext(ctx).
		Where("user_id = ?", recipientID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, storeError(err)
	}
	return notifications, nil
}

// GetUnreadCount returns the number of unread notifications.
func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", recipientID, models.StatusUnread).
		Count(&count).Error
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

// MarkAsRead transitions a notification to read. It is idempotent: the
// first call reports a state change, repeats succeed without one.
// Content and creation time are never touched.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND status = ?", notificationID, models.StatusUnread).
		Update("status", models.StatusRead)
	if res.Error != nil {
		return false, storeError(res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Nothing changed: either already read or the id does not exist.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", notificationID).Count(&count).Error; err != nil {
		return false, storeError(err)
	}
	if count == 0 {
		return false, models.ErrNotFound
	}
	return false, nil
}

// MarkAllAsRead marks every unread notification for the recipient as
// read, returning how many rows changed.
func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", recipientID, models.StatusUnread).
		Update("status", models.StatusRead)
	if res.Error != nil {
		return 0, storeError(res.Error)
	}
	return res.RowsAffected, nil
}

// storeError hides driver detail behind the store-unavailable sentinel
// while keeping the cause on the chain for logs.
func storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.ErrStoreUnavailable
	}
	return errors.Join(models.ErrStoreUnavailable, err)
}
