package services

import (
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/gorm"
)

// ActivityService writes the append-only audit trail. Logging is
// best-effort: a failed insert never fails the operation it describes.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(conn *gorm.DB) *ActivityService {
	return &ActivityService{db: conn}
}

// Log records one action against an entity.
func (s *ActivityService) Log(userID uint, action, entityType string, entityID uint, details string) {
	activity := models.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.db.Create(&activity).Error; err != nil {
		log := logger.WithComponent("activity")
		log.Warn().Err(err).Str("action", action).Str("entity", entityType).Msg("failed to record activity")
	}
}

// Recent returns the latest entries for a user, newest first.
func (s *ActivityService) Recent(userID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	activities := []models.Activity{}
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
