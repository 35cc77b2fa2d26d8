package repositories

import (
	"github.com/futurepulse/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateWithRecipients(notification *models.Notification, recipientIDs []uint) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository
// backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateWithRecipients creates a notification record together with its
// recipient rows in a single transaction. The recipient set is the snapshot
// computed at creation time and is never changed afterwards.
func (r *postgresNotificationRepository) CreateWithRecipients(notification *models.Notification, recipientIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Recipients").Create(notification).Error; err != nil {
			return err
		}
		if len(recipientIDs) == 0 {
			return nil
		}
		recipients := make([]models.User, len(recipientIDs))
		for i, id := range recipientIDs {
			recipients[i] = models.User{ID: id}
		}
		// Omit("Recipients.*") appends join rows without touching user rows
		return tx.Model(notification).Omit("Recipients.*").Association("Recipients").Append(&recipients)
	})
}

// GetByRecipientID retrieves a user's notifications, newest first. This is
// the pull path used by clients that were not connected when an event fired.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	base := r.db.Model(&models.Notification{}).
		Joins("JOIN notification_recipients nr ON nr.notification_id = notifications.id").
		Where("nr.user_id = ?", recipientID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := base.Order("notifications.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}
