package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

func (r *StudySessionRepository) Create(s *model.StudySession) error {
	return r.DB.Create(s).Error
}

func (r *StudySessionRepository) FindByID(id string) (*model.StudySession, error) {
	var s model.StudySession
	err := r.DB.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return &s, err
}

func (r *StudySessionRepository) FindActive(userID uint) (*model.StudySession, error) {
	var s model.StudySession
	err := r.DB.Where("user_id = ? AND ended_at IS NULL", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return &s, err
}

func (r *StudySessionRepository) Update(s *model.StudySession) error {
	return r.DB.Save(s).Error
}

func (r *StudySessionRepository) ListByUser(userID uint, page, limit int) ([]model.StudySession, int64, error) {
	query := r.DB.Model(&model.StudySession{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.StudySession
	offset := (page - 1) * limit
	err := query.Order("started_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}

// TotalDuration 用户累计学习时长（秒）
func (r *StudySessionRepository) TotalDuration(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND ended_at IS NOT NULL", userID).
		Select("COALESCE(SUM(duration_seconds), 0)").Scan(&total).Error
	return total, err
}
