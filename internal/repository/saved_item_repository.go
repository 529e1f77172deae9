package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedItemRepository struct {
	DB *gorm.DB
}

func NewSavedItemRepository(db *gorm.DB) *SavedItemRepository {
	return &SavedItemRepository{DB: db}
}

// Save 重复收藏为幂等操作
func (r *SavedItemRepository) Save(item *model.SavedItem) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *SavedItemRepository) Unsave(userID uint, kind, targetID string) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND kind = ? AND target_id = ?", userID, kind, targetID).
		Delete(&model.SavedItem{}).Error
}

func (r *SavedItemRepository) ListByUser(userID uint, kind string, page, limit int) ([]model.SavedItem, int64, error) {
	query := r.DB.Model(&model.SavedItem{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.SavedItem
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}
